package pixel

import "testing"

func TestBytesPerPixel(t *testing.T) {
	tests := []struct {
		format OutputFormat
		want   int
	}{
		{OutputY14, 2},
		{OutputYUV422, 2},
		{OutputYUV444, 3},
		{OutputRGB888, 3},
		{OutputBGR888, 3},
	}
	for _, tt := range tests {
		if got := tt.format.BytesPerPixel(); got != tt.want {
			t.Errorf("%v.BytesPerPixel() = %d, want %d", tt.format, got, tt.want)
		}
	}

	for _, f := range []InputFormat{InputY14, InputY16, InputYUV422} {
		if got := f.BytesPerPixel(); got != 2 {
			t.Errorf("%v.BytesPerPixel() = %d, want 2", f, got)
		}
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"y14", OutputY14, false},
		{"yuv444", OutputYUV444, false},
		{"yuv422", OutputYUV422, false},
		{"rgb", OutputRGB888, false},
		{"rgb888", OutputRGB888, false},
		{"bgr", OutputBGR888, false},
		{"cmyk", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOutputFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseInputFormat(t *testing.T) {
	for _, f := range []InputFormat{InputY14, InputY16, InputYUV422} {
		got, err := ParseInputFormat(f.String())
		if err != nil {
			t.Fatalf("ParseInputFormat(%q) failed: %v", f.String(), err)
		}
		if got != f {
			t.Errorf("ParseInputFormat(%q) = %v, want %v", f.String(), got, f)
		}
	}
	if _, err := ParseInputFormat("jpeg"); err == nil {
		t.Error("ParseInputFormat(jpeg) should fail")
	}
}

func TestParseRotateSide(t *testing.T) {
	tests := []struct {
		in   string
		want RotateSide
	}{
		{"none", RotateNone},
		{"", RotateNone},
		{"left90", RotateLeft90},
		{"right90", RotateRight90},
		{"180", Rotate180},
	}
	for _, tt := range tests {
		got, err := ParseRotateSide(tt.in)
		if err != nil {
			t.Fatalf("ParseRotateSide(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseRotateSide(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseRotateSide("45"); err == nil {
		t.Error("ParseRotateSide(45) should fail")
	}
}

func TestRotateSwaps(t *testing.T) {
	if RotateNone.Swaps() || Rotate180.Swaps() {
		t.Error("none/180 must not swap the bounding box")
	}
	if !RotateLeft90.Swaps() || !RotateRight90.Swaps() {
		t.Error("quarter rotations must swap the bounding box")
	}
}

func TestU16RoundTrip(t *testing.T) {
	buf := make([]byte, 8)
	values := []uint16{0, 1, 16383, 65535}
	for i, v := range values {
		PutU16(buf, i, v)
	}
	for i, v := range values {
		if got := U16(buf, i); got != v {
			t.Errorf("sample %d: got %d, want %d", i, got, v)
		}
	}
	// Little-endian on the wire.
	if buf[4] != 0xff || buf[5] != 0x3f {
		t.Errorf("sample 2 bytes = %#x %#x, want 0xff 0x3f", buf[4], buf[5])
	}
}
