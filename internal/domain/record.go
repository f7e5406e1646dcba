package domain

// Record is the common identity and timestamp surface every persisted entity
// exposes to the repository layer. Stamp sets created_at once and refreshes
// updated_at on every persisted mutation.
type Record interface {
	RecordID() string
	SetRecordID(id string)
	Stamp(now string)
}

func (p *Project) RecordID() string      { return p.ID }
func (p *Project) SetRecordID(id string) { p.ID = id }
func (p *Project) Stamp(now string) {
	if p.CreatedAt == "" {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

func (f *FiveWhys) RecordID() string      { return f.ID }
func (f *FiveWhys) SetRecordID(id string) { f.ID = id }
func (f *FiveWhys) Stamp(now string) {
	if f.CreatedAt == "" {
		f.CreatedAt = now
	}
	f.UpdatedAt = now
}

func (d *IshikawaDiagram) RecordID() string      { return d.ID }
func (d *IshikawaDiagram) SetRecordID(id string) { d.ID = id }
func (d *IshikawaDiagram) Stamp(now string) {
	if d.CreatedAt == "" {
		d.CreatedAt = now
	}
	d.UpdatedAt = now
}

func (c *IshikawaCategory) RecordID() string      { return c.ID }
func (c *IshikawaCategory) SetRecordID(id string) { c.ID = id }
func (c *IshikawaCategory) Stamp(now string) {
	if c.CreatedAt == "" {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

func (a *ActionPlan) RecordID() string      { return a.ID }
func (a *ActionPlan) SetRecordID(id string) { a.ID = id }
func (a *ActionPlan) Stamp(now string) {
	if a.CreatedAt == "" {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
}

func (t *ActionPlanTask) RecordID() string      { return t.ID }
func (t *ActionPlanTask) SetRecordID(id string) { t.ID = id }
func (t *ActionPlanTask) Stamp(now string) {
	if t.CreatedAt == "" {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}
