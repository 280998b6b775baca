package widget

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		input   string
		want    Size
		wantErr bool
	}{
		{"small", SizeSmall, false},
		{"Medium", SizeMedium, false},
		{"LARGE", SizeLarge, false},
		{"accessoryInline", SizeAccessoryInline, false},
		{" accessorycircular ", SizeAccessoryCircular, false},
		{"huge", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSize(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseSize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSizeRoundTrip(t *testing.T) {
	for _, s := range append(append([]Size{}, HomeSizes...), AccessorySizes...) {
		got, err := ParseSize(s.String())
		if err != nil || got != s {
			t.Errorf("ParseSize(%q) = %v, %v", s.String(), got, err)
		}
	}
	if SizeMedium.Label() != "Medium" {
		t.Errorf("Label() = %q", SizeMedium.Label())
	}
}

func TestStyleFor(t *testing.T) {
	small := StyleFor(SizeSmall)
	if small.TitleFontSize != 13 || small.RowSpacing != 4 || small.Padding != 4 {
		t.Errorf("small style = %+v", small)
	}
	for _, s := range []Size{SizeMedium, SizeLarge} {
		st := StyleFor(s)
		if st.TitleFontSize != 20 || st.RowSpacing != 8 || st.Padding != 10 {
			t.Errorf("%s style = %+v", s, st)
		}
	}
	if StyleFor(Size(99)) != StyleFor(SizeMedium) {
		t.Error("expected unknown sizes to fall back to medium")
	}
}

func TestFitRow(t *testing.T) {
	tests := []struct {
		name  string
		title string
		value string
		width int
	}{
		{"ascii", "MyDay", "25年", 20},
		{"cjk title", "纪念日", "1年6月", 20},
		{"title truncated", "a very long anniversary title", "3天", 12},
		{"value wider than row", "x", "123456789012345", 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitRow(tt.title, tt.value, tt.width)
			if w := runewidth.StringWidth(got); w > tt.width {
				t.Errorf("FitRow() width = %d, want <= %d (%q)", w, tt.width, got)
			}
		})
	}

	if got := FitRow("纪念日", "1年6月", 20); runewidth.StringWidth(got) != 20 || !strings.HasSuffix(got, "1年6月") {
		t.Errorf("expected right aligned value, got %q", got)
	}
}

func TestRender(t *testing.T) {
	wd := Widget{
		Rows:   []Row{{Title: "纪念日", Value: "1年6月"}, {Title: "MyDay", Value: "25年"}},
		Footer: "最后更新：10:30:00",
	}
	out := Render(SizeMedium, wd)
	for _, want := range []string{"纪念日", "1年6月", "MyDay", "25年", "最后更新"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in rendered widget:\n%s", want, out)
		}
	}
}

func TestRenderInline(t *testing.T) {
	out := Render(SizeAccessoryInline, Widget{Text: "10月14号 周三"})
	if out != "10月14号 周三" {
		t.Errorf("Render(inline) = %q", out)
	}
}

func TestTerminalSurfacePresent(t *testing.T) {
	var buf bytes.Buffer
	if err := (TerminalSurface{}).Present(&buf, SizeSmall, Widget{Text: "buy milk", Error: true}); err != nil {
		t.Fatalf("Present() error: %v", err)
	}
	if !strings.Contains(buf.String(), "buy milk") {
		t.Errorf("expected text in output, got %q", buf.String())
	}
}
