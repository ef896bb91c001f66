package scx

const aiReservedSize = 396

// AIFile is one embedded AI script, keyed by file name.
type AIFile struct {
	Name    []byte
	Content []byte
}

// AISection is the optional tail of the payload. Files are kept in stream
// order so encoding is deterministic.
type AISection struct {
	HasFiles     int32
	ReservedFlag int32
	Reserved     []byte // present when ReservedFlag is 1
	Files        []AIFile
}

// Lookup returns the content of the AI file with the given name.
func (a *AISection) Lookup(name string) ([]byte, bool) {
	for _, f := range a.Files {
		if string(f.Name) == name {
			return f.Content, true
		}
	}
	return nil, false
}

func (s *Scenario) readAIFiles(r *reader) {
	a := &s.AI
	a.HasFiles = r.i32()
	a.ReservedFlag = r.i32()
	if a.ReservedFlag == 1 {
		a.Reserved = r.bytes(aiReservedSize)
	}
	if a.HasFiles != 1 {
		return
	}

	n := r.count("ai file count", 8)
	a.Files = make([]AIFile, 0, n)
	for i := 0; i < n && r.err == nil; i++ {
		a.Files = append(a.Files, AIFile{Name: r.blob32(), Content: r.blob32()})
	}
}

func (s *Scenario) writeAIFiles(w *writer) {
	a := &s.AI
	w.i32(a.HasFiles)
	w.i32(a.ReservedFlag)
	if a.ReservedFlag == 1 {
		w.fixed(a.Reserved, aiReservedSize)
	}
	if a.HasFiles != 1 {
		return
	}

	w.i32(int32(len(a.Files)))
	for _, f := range a.Files {
		w.blob32("ai file name", f.Name)
		w.blob32("ai file content", f.Content)
	}
}
