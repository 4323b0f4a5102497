// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package list

import (
	"bytes"
	"strings"
	"testing"

	"github.com/embeddedgo/regtools/mt25q"
)

func lines(t *testing.T, all, expand bool) []string {
	t.Helper()
	var buf bytes.Buffer
	Write(&buf, mt25q.Map(), all, expand)
	ls := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if ls[0] != mt25q.Name+": "+mt25q.Descr {
		t.Fatalf("bad header: %s", ls[0])
	}
	return ls[1:]
}

func TestVisibleOnly(t *testing.T) {
	ls := lines(t, false, false)
	if len(ls) != 1 {
		t.Fatalf("got %d rows, want 1:\n%s", len(ls), strings.Join(ls, "\n"))
	}
	if f := strings.Fields(ls[0]); f[0] != "0x000" || f[1] != "32" || f[2] != "RW" || f[3] != "Test" {
		t.Errorf("bad row: %s", ls[0])
	}
}

func TestAll(t *testing.T) {
	ls := lines(t, true, false)
	want := []string{"Test", "Addr32BitMode", "Addr", "Cmd", "Data[64]"}
	if len(ls) != len(want) {
		t.Fatalf("got %d rows, want %d", len(ls), len(want))
	}
	for i, l := range ls {
		if f := strings.Fields(l); f[3] != want[i] {
			t.Errorf("row %d: got %s, want %s", i, f[3], want[i])
		}
	}
}

func TestExpand(t *testing.T) {
	ls := lines(t, true, true)
	if len(ls) != 4+mt25q.DataLen {
		t.Fatalf("got %d rows", len(ls))
	}
	last := strings.Fields(ls[len(ls)-1])
	if last[0] != "0x2FC" || last[3] != "Data[63]" {
		t.Errorf("bad last row: %s", ls[len(ls)-1])
	}
}
