package engine

import "testing"

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		name string
		rows [][]int
		want bool
	}{
		{
			name: "checkerboard",
			rows: [][]int{
				{2, 4, 2, 4},
				{4, 2, 4, 2},
				{2, 4, 2, 4},
				{4, 2, 4, 2},
			},
			want: true,
		},
		{
			name: "distinct values",
			rows: [][]int{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 2048, 4096},
				{8192, 16384, 32768, 65536},
			},
			want: true,
		},
		{
			name: "horizontal pair",
			rows: [][]int{
				{2, 2, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 2048, 4096},
				{8192, 16384, 32768, 65536},
			},
			want: false,
		},
		{
			name: "vertical pair in last column",
			rows: [][]int{
				{2, 4, 2, 4},
				{4, 2, 4, 8},
				{2, 4, 2, 8},
				{4, 2, 4, 2},
			},
			want: false,
		},
		{
			name: "pair in bottom row",
			rows: [][]int{
				{2, 4, 2, 4},
				{4, 2, 4, 2},
				{2, 4, 2, 4},
				{4, 2, 16, 16},
			},
			want: false,
		},
		{
			name: "empty cell",
			rows: [][]int{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 0, 4096},
				{8192, 16384, 32768, 65536},
			},
			want: false,
		},
		{
			name: "empty board",
			rows: [][]int{
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsTerminal(board(t, tt.rows...), Size4)
			if err != nil {
				t.Fatalf("IsTerminal() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsTerminalLargerGrids(t *testing.T) {
	for _, size := range []GridSize{Size5, Size6} {
		rows := make([][]int, size)
		for r := range rows {
			rows[r] = make([]int, size)
			for c := range rows[r] {
				rows[r][c] = 2
				if (r+c)%2 == 1 {
					rows[r][c] = 4
				}
			}
		}
		stuck, err := IsTerminal(board(t, rows...), size)
		if err != nil {
			t.Fatalf("IsTerminal() failed: %v", err)
		}
		if !stuck {
			t.Errorf("IsTerminal(%s checkerboard) = false, want true", size)
		}

		rows[0][0] = 0
		stuck, err = IsTerminal(board(t, rows...), size)
		if err != nil {
			t.Fatalf("IsTerminal() failed: %v", err)
		}
		if stuck {
			t.Errorf("IsTerminal(%s with hole) = true, want false", size)
		}
	}
}

func TestIsTerminalAgreesWithCanMove(t *testing.T) {
	stuck := board(t,
		[]int{2, 4, 8, 2},
		[]int{4, 8, 2, 4},
		[]int{8, 2, 4, 8},
		[]int{2, 4, 8, 2},
	)
	terminal, err := IsTerminal(stuck, Size4)
	if err != nil {
		t.Fatalf("IsTerminal() failed: %v", err)
	}
	canMove, err := CanMove(stuck, Size4)
	if err != nil {
		t.Fatalf("CanMove() failed: %v", err)
	}
	if terminal == canMove {
		t.Errorf("IsTerminal() = %v and CanMove() = %v should disagree", terminal, canMove)
	}
}
