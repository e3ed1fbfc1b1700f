package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatPadsColumns(t *testing.T) {
	rows := [][]string{{"a", "1"}, {"bbb", "22"}}
	got := Format(rows, []Alignment{AlignLeft, AlignRight})
	want := []string{"a     1", "bbb  22"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected rows (-want +got):\n%s", diff)
	}
}

func TestFormatMeasuresWideRunes(t *testing.T) {
	rows := [][]string{{"日本", "x"}, {"abcd", "y"}}
	got := Format(rows, nil)
	if got[0] != "日本  x" || got[1] != "abcd  y" {
		t.Fatalf("unexpected rows %q", got)
	}
}

func TestFitTruncatesFirstColumn(t *testing.T) {
	rows := [][]string{{"a very long label", "hint"}, {"short", "h"}}
	got := Fit(rows, []Alignment{AlignLeft, AlignRight}, 14)
	want := []string{"a very …  hint", "short" + "        " + "h"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected rows (-want +got):\n%s", diff)
	}
	if Fit(nil, nil, 10) != nil {
		t.Fatalf("expected nil for no rows")
	}
}
