package scx

// TriggerFormatExtended is the trigger section discriminant that adds one
// byte after itself and one 32-bit field to every trigger.
const TriggerFormatExtended = 1.6

// Trigger is one scripted rule. Effects and Conditions are in storage order;
// EffectsOrder and ConditionsOrder record display order as raw indices and
// are neither validated nor repaired.
type Trigger struct {
	Enabled          int32
	Looping          int32
	Objective        uint8
	DescriptionOrder int32
	Extra            int32 // present only in the extended trigger format
	Description      []byte
	Name             []byte

	Effects         []Effect
	EffectsOrder    []int32
	Conditions      []Condition
	ConditionsOrder []int32
}

// Effect is a trigger action. Fields has whatever length the stream declared.
type Effect struct {
	Type      EffectType
	Fields    []int32
	Text      []byte
	SoundFile []byte
	UnitIDs   []int32
}

// Field returns the value of a named slot, reporting false when the field
// vector is too short to hold it.
func (e *Effect) Field(f EffectField) (int32, bool) {
	if int(f) < 0 || int(f) >= len(e.Fields) {
		return 0, false
	}
	return e.Fields[f], true
}

// SetField stores v in a named slot, growing the vector with -1 as needed.
func (e *Effect) SetField(f EffectField, v int32) {
	for len(e.Fields) <= int(f) {
		e.Fields = append(e.Fields, -1)
	}
	e.Fields[f] = v
}

// selectedCount is the number of unit ids that trail the effect on disk.
func (e *Effect) selectedCount() int {
	n, ok := e.Field(EffectNumSelected)
	if !ok || n < 0 {
		return 0
	}
	return int(n)
}

// Condition is a trigger predicate. Fields has whatever length the stream
// declared.
type Condition struct {
	Type   ConditionType
	Fields []int32
}

// Field returns the value of a named slot, reporting false when the field
// vector is too short to hold it.
func (c *Condition) Field(f ConditionField) (int32, bool) {
	if int(f) < 0 || int(f) >= len(c.Fields) {
		return 0, false
	}
	return c.Fields[f], true
}

// SetField stores v in a named slot, growing the vector with -1 as needed.
func (c *Condition) SetField(f ConditionField, v int32) {
	for len(c.Fields) <= int(f) {
		c.Fields = append(c.Fields, -1)
	}
	c.Fields[f] = v
}

// TriggerSection holds the trigger list with its format discriminant.
type TriggerSection struct {
	Format   float64
	Flag     uint8 // byte following the discriminant in the extended format
	Triggers []Trigger
	Order    []int32
}

// Extended reports whether the section uses the extended trigger format.
func (t *TriggerSection) Extended() bool {
	return t.Format == TriggerFormatExtended
}

// minTriggerSize is the smallest possible on-disk trigger.
const minTriggerSize = 4 + 4 + 1 + 1 + 4 + 4 + 4 + 4 + 4

func (s *Scenario) readTriggers(r *reader) {
	t := &s.Triggers
	t.Format = r.f64()
	if t.Extended() {
		t.Flag = r.u8()
	}

	n := r.count("trigger count", minTriggerSize)
	t.Triggers = make([]Trigger, 0, n)
	for i := 0; i < n && r.err == nil; i++ {
		r.trigger = i
		t.Triggers = append(t.Triggers, readTrigger(r, t.Extended()))
	}
	r.trigger = -1
	t.Order = r.int32s(n)
}

func readTrigger(r *reader, extended bool) Trigger {
	var t Trigger
	t.Enabled = r.i32()
	t.Looping = r.i32()
	r.skip(1)
	t.Objective = r.u8()
	t.DescriptionOrder = r.i32()
	if extended {
		t.Extra = r.i32()
	}
	t.Description = r.blob32()
	t.Name = r.blob32()

	n := r.count("effect count", 16)
	t.Effects = make([]Effect, 0, n)
	for i := 0; i < n && r.err == nil; i++ {
		e := Effect{Type: EffectType(r.i32())}
		e.Fields = r.int32s(r.count("effect field count", 4))
		e.Text = r.blob32()
		e.SoundFile = r.blob32()
		e.UnitIDs = r.int32s(e.selectedCount())
		t.Effects = append(t.Effects, e)
	}
	t.EffectsOrder = r.int32s(n)

	n = r.count("condition count", 8)
	t.Conditions = make([]Condition, 0, n)
	for i := 0; i < n && r.err == nil; i++ {
		c := Condition{Type: ConditionType(r.i32())}
		c.Fields = r.int32s(r.count("condition field count", 4))
		t.Conditions = append(t.Conditions, c)
	}
	t.ConditionsOrder = r.int32s(n)
	return t
}

func (s *Scenario) writeTriggers(w *writer) {
	t := &s.Triggers
	w.f64(t.Format)
	if t.Extended() {
		w.u8(t.Flag)
	}

	w.i32(int32(len(t.Triggers)))
	for i := range t.Triggers {
		w.trigger = i
		writeTrigger(w, &t.Triggers[i], t.Extended())
	}
	w.trigger = -1
	w.slots(t.Order, len(t.Triggers))
}

func writeTrigger(w *writer, t *Trigger, extended bool) {
	w.i32(t.Enabled)
	w.i32(t.Looping)
	w.u8(0)
	w.u8(t.Objective)
	w.i32(t.DescriptionOrder)
	if extended {
		w.i32(t.Extra)
	}
	w.blob32("description", t.Description)
	w.blob32("name", t.Name)

	w.i32(int32(len(t.Effects)))
	for _, e := range t.Effects {
		w.i32(int32(e.Type))
		w.i32(int32(len(e.Fields)))
		w.int32s(e.Fields)
		w.blob32("effect text", e.Text)
		w.blob32("sound file", e.SoundFile)
		w.slots(e.UnitIDs, e.selectedCount())
	}
	w.slots(t.EffectsOrder, len(t.Effects))

	w.i32(int32(len(t.Conditions)))
	for _, c := range t.Conditions {
		w.i32(int32(c.Type))
		w.i32(int32(len(c.Fields)))
		w.int32s(c.Fields)
	}
	w.slots(t.ConditionsOrder, len(t.Conditions))
}
