package charset_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/encoding/simplifiedchinese"

	"courseplan/internal/charset"
)

func gbk(t *testing.T, s string) []byte {
	t.Helper()
	out, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte(s))
	if err != nil {
		t.Fatalf("encode gbk: %v", err)
	}
	return out
}

func TestDetectEmptySampleUsesDefault(t *testing.T) {
	guess := charset.Detect(nil)
	if guess.Label != charset.DefaultLabel {
		t.Fatalf("label = %q, want %q", guess.Label, charset.DefaultLabel)
	}
	if guess.Detected {
		t.Fatal("expected Detected=false for empty sample")
	}

	guess = charset.DetectWithDefault(nil, "gbk")
	if guess.Label != "gbk" {
		t.Fatalf("label = %q, want gbk", guess.Label)
	}
}

func TestDetectUTF8(t *testing.T) {
	sample := []byte(strings.Repeat("课程号,课程名称,上课专业\nCS101,计算机导论,计算机科学与技术\n", 20))
	guess := charset.Detect(sample)
	if !guess.Detected {
		t.Fatal("expected detector verdict")
	}
	if charset.NormalizeLabel(guess.Label) != "utf-8" {
		t.Fatalf("label = %q, want UTF-8", guess.Label)
	}
}

func TestSampleBounds(t *testing.T) {
	data := make([]byte, 50)
	if got := len(charset.Sample(data, 10)); got != 10 {
		t.Fatalf("len = %d, want 10", got)
	}
	if got := len(charset.Sample(data, 0)); got != 50 {
		t.Fatalf("len = %d, want 50", got)
	}
}

func TestCandidatesOrderAndDedup(t *testing.T) {
	got := charset.Candidates(charset.Guess{Label: "GBK"}, charset.DefaultFallbacks)
	want := []string{"GBK", "gb2312", "utf-8-sig", "latin1", "cp1252"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("candidates = %v, want %v", got, want)
	}

	got = charset.Candidates(charset.Guess{Label: "UTF-8"}, charset.DefaultFallbacks)
	want = []string{"UTF-8", "gbk", "gb2312", "utf-8-sig", "latin1", "cp1252"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("candidates = %v, want %v", got, want)
	}
}

func TestLookup(t *testing.T) {
	for _, label := range []string{"utf-8", "UTF-8", "utf-8-sig", "gbk", "GB2312", "GB-18030", "latin1", "cp1252", "windows-1251", "Shift_JIS"} {
		if _, err := charset.Lookup(label); err != nil {
			t.Errorf("Lookup(%q) error = %v", label, err)
		}
	}
	if _, err := charset.Lookup("IBM420_rtl"); !errors.Is(err, charset.ErrUnknownLabel) {
		t.Fatalf("expected ErrUnknownLabel, got %v", err)
	}
	if charset.Known("no-such-encoding") {
		t.Fatal("expected unknown label")
	}
}

func TestDecode(t *testing.T) {
	raw := gbk(t, "课程号,课程名称")

	if _, err := charset.Decode("utf-8", raw); !errors.Is(err, charset.ErrInvalidBytes) {
		t.Fatalf("utf-8 decode of gbk bytes: expected ErrInvalidBytes, got %v", err)
	}

	text, err := charset.Decode("gbk", raw)
	if err != nil {
		t.Fatalf("gbk decode: %v", err)
	}
	if text != "课程号,课程名称" {
		t.Fatalf("gbk decode = %q", text)
	}

	bom := append([]byte{0xEF, 0xBB, 0xBF}, []byte("course")...)
	text, err = charset.Decode("utf-8-sig", bom)
	if err != nil {
		t.Fatalf("utf-8-sig decode: %v", err)
	}
	if text != "course" {
		t.Fatalf("utf-8-sig decode = %q, want BOM stripped", text)
	}

	text, err = charset.Decode("latin1", []byte{'c', 'a', 'f', 0xE9})
	if err != nil {
		t.Fatalf("latin1 decode: %v", err)
	}
	if text != "café" {
		t.Fatalf("latin1 decode = %q", text)
	}

	if _, err := charset.Decode("bogus", raw); !errors.Is(err, charset.ErrUnknownLabel) {
		t.Fatalf("expected ErrUnknownLabel, got %v", err)
	}
}
