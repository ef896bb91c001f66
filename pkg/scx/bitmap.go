package scx

const (
	// PaletteSize is the number of palette entries in the thumbnail.
	PaletteSize = 256

	reservedStrings = 32
)

// RGB is one palette entry. Each entry is followed by a padding byte on disk.
type RGB struct {
	Red   uint8
	Green uint8
	Blue  uint8
}

// Bitmap is the embedded thumbnail in device-independent bitmap layout.
type Bitmap struct {
	Size          int32
	Width         int32
	Height        int32
	Planes        int32
	BitCount      int32
	Compression   int32
	SizeImage     int32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       int32
	ClrImportant  int32
	Palette       [PaletteSize]RGB
	Pixels        []byte
}

// RowStride is the number of bytes per pixel row for a bitmap width,
// rounded up to a 4-byte boundary.
func RowStride(width int32) int {
	if width <= 0 {
		return 0
	}
	return int((width-1)/4+1) * 4
}

// ImageDataLength is the size of the pixel data for the given dimensions.
func ImageDataLength(width, height int32) int {
	if height <= 0 {
		return 0
	}
	return RowStride(width) * int(height)
}

func readBitmap(r *reader, width, height int32) *Bitmap {
	b := &Bitmap{
		Size:          r.i32(),
		Width:         r.i32(),
		Height:        r.i32(),
		Planes:        r.i32(),
		BitCount:      r.i32(),
		Compression:   r.i32(),
		SizeImage:     r.i32(),
		XPelsPerMeter: r.i32(),
		YPelsPerMeter: r.i32(),
		ClrUsed:       r.i32(),
		ClrImportant:  r.i32(),
	}
	for i := range b.Palette {
		b.Palette[i] = RGB{Red: r.u8(), Green: r.u8(), Blue: r.u8()}
		r.skip(1)
	}
	b.Pixels = r.bytes(ImageDataLength(width, height))
	return b
}

func (b *Bitmap) encodeTo(w *writer, width, height int32) {
	w.i32(b.Size)
	w.i32(b.Width)
	w.i32(b.Height)
	w.i32(b.Planes)
	w.i32(b.BitCount)
	w.i32(b.Compression)
	w.i32(b.SizeImage)
	w.i32(b.XPelsPerMeter)
	w.i32(b.YPelsPerMeter)
	w.i32(b.ClrUsed)
	w.i32(b.ClrImportant)
	for _, c := range b.Palette {
		w.u8(c.Red)
		w.u8(c.Green)
		w.u8(c.Blue)
		w.u8(0)
	}
	w.fixed(b.Pixels, ImageDataLength(width, height))
}

// HasBitmap reports whether the declared thumbnail dimensions are positive,
// which is what gates the bitmap block on disk.
func (s *Scenario) HasBitmap() bool {
	return s.BitmapWidth > 0 && s.BitmapHeight > 0
}

// readPresentation covers the original filename, string tables, the
// thumbnail and the reserved string block.
func (s *Scenario) readPresentation(r *reader) {
	s.OriginalFilename = r.blob16()
	s.StringTableInfos = r.int32s(r.version.StringTableInfoCount())

	n := r.version.StringInfoCount()
	s.StringInfos = make([][]byte, 0, n)
	for i := 0; i < n && r.err == nil; i++ {
		s.StringInfos = append(s.StringInfos, r.blob16())
	}

	s.BitmapFlag = r.i32()
	s.BitmapWidth = r.i32()
	s.BitmapHeight = r.i32()
	r.skip(2)
	if s.HasBitmap() {
		s.Bitmap = readBitmap(r, s.BitmapWidth, s.BitmapHeight)
	}

	for i := 0; i < reservedStrings && r.err == nil; i++ {
		r.blob16()
	}
}

func (s *Scenario) writePresentation(w *writer) {
	w.blob16("original filename", s.OriginalFilename)
	w.slots(s.StringTableInfos, w.version.StringTableInfoCount())

	n := w.version.StringInfoCount()
	for i := 0; i < n; i++ {
		var str []byte
		if i < len(s.StringInfos) {
			str = s.StringInfos[i]
		}
		w.blob16("string info", str)
	}

	w.i32(s.BitmapFlag)
	w.i32(s.BitmapWidth)
	w.i32(s.BitmapHeight)
	w.i16(1)
	if s.HasBitmap() {
		b := s.Bitmap
		if b == nil {
			b = &Bitmap{}
		}
		b.encodeTo(w, s.BitmapWidth, s.BitmapHeight)
	}

	w.zeros(reservedStrings * 2)
}
