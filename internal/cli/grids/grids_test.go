package grids

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/timegrid/internal/cli"
	"github.com/julianstephens/timegrid/internal/present"
)

func testContext(answer bool) (*cli.Context, *bytes.Buffer, *int) {
	var out bytes.Buffer
	asked := 0
	return &cli.Context{
		Out: &out,
		Ctx: context.Background(),
		Confirm: func(title, description string) (bool, error) {
			asked++
			return answer, nil
		},
	}, &out, &asked
}

func TestShowCmd(t *testing.T) {
	ctx, out, _ := testContext(false)

	if err := (&ShowCmd{NoColor: true}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, want := range []string{"DAY / TIME", "Monday", "Tea Break"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestShowCmd_UnknownDay(t *testing.T) {
	ctx, _, _ := testContext(false)
	if err := (&ShowCmd{Day: "Sunday", NoColor: true}).Run(ctx); err == nil {
		t.Error("Run() with an unknown day should fail")
	}
}

func TestRenderCmd_Stdout(t *testing.T) {
	ctx, out, _ := testContext(false)

	if err := (&RenderCmd{Format: "json"}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	var doc present.Document
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("stdout is not a JSON document: %v", err)
	}
	if len(doc.Grid) != 6 || len(doc.Grid[0]) != 9 {
		t.Errorf("grid is %dx%d, want 6x9", len(doc.Grid), len(doc.Grid[0]))
	}
}

func TestRenderCmd_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "week.html")
	ctx, _, asked := testContext(false)

	if err := (&RenderCmd{Format: "html", Out: path}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if *asked != 0 {
		t.Error("a new file should not need confirmation")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `rowspan="6"`) {
		t.Error("HTML output should carry the tea break rowspan")
	}
}

func TestRenderCmd_Overwrite(t *testing.T) {
	tests := []struct {
		name      string
		force     bool
		answer    bool
		wantAsked int
		wantKept  bool
	}{
		{"declined", false, false, 1, true},
		{"confirmed", false, true, 1, false},
		{"forced", true, false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "week.csv")
			if err := os.WriteFile(path, []byte("keep me"), 0644); err != nil {
				t.Fatal(err)
			}
			ctx, _, asked := testContext(tt.answer)

			if err := (&RenderCmd{Format: "csv", Out: path, Force: tt.force}).Run(ctx); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if *asked != tt.wantAsked {
				t.Errorf("confirm asked %d times, want %d", *asked, tt.wantAsked)
			}
			data, _ := os.ReadFile(path)
			if kept := string(data) == "keep me"; kept != tt.wantKept {
				t.Errorf("file kept = %v, want %v", kept, tt.wantKept)
			}
		})
	}
}
