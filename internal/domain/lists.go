package domain

import "encoding/json"

// Ordered string lists (team members, additional whys, causes) are stored as
// JSON text blobs. Decoding is forgiving: an absent, empty, or malformed blob
// reads as an empty list, never an error.

// EncodeList serializes a string list for storage. A nil list encodes as [].
func EncodeList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return string(b)
}

// DecodeList deserializes a stored list blob, degrading to empty on bad input.
func DecodeList(blob string) []string {
	if blob == "" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(blob), &items); err != nil {
		return []string{}
	}
	if items == nil {
		return []string{}
	}
	return items
}

// TeamMemberList returns the project's team members in stored order.
func (p *Project) TeamMemberList() []string {
	return DecodeList(p.TeamMembersJSON)
}

// SetTeamMemberList replaces the project's team members.
func (p *Project) SetTeamMemberList(members []string) {
	p.TeamMembersJSON = EncodeList(members)
}

// AdditionalWhyList returns the whys beyond the five fixed slots.
func (f *FiveWhys) AdditionalWhyList() []string {
	return DecodeList(f.AdditionalWhysJSON)
}

// SetAdditionalWhyList replaces the whys beyond the five fixed slots.
func (f *FiveWhys) SetAdditionalWhyList(whys []string) {
	f.AdditionalWhysJSON = EncodeList(whys)
}

// CauseList returns the category's cause statements in stored order.
func (c *IshikawaCategory) CauseList() []string {
	return DecodeList(c.CausesJSON)
}

// SetCauseList replaces the category's cause statements.
func (c *IshikawaCategory) SetCauseList(causes []string) {
	c.CausesJSON = EncodeList(causes)
}
