package vm

import "testing"

func TestIntegerArithmetic(t *testing.T) {
	tests := []struct {
		sel  string
		a, b int64
		want int64
	}{
		{"plus:", 2, 3, 5},
		{"minus:", 2, 3, -1},
		{"multiplyBy:", -4, 3, -12},
		{"divBy:", 7, 2, 3},
		{"divBy:", -7, 2, -3},
		{"divBy:", 7, -2, -3},
	}
	for _, tt := range tests {
		got := mustEval(t, send(intLit(tt.a), tt.sel, intLit(tt.b)))
		wantInt(t, got, tt.want)
	}
}

func TestIntegerDivByZero(t *testing.T) {
	_, err := eval(t, send(intLit(1), "divBy:", intLit(0)))
	wantKind(t, err, ErrValueError)
}

func TestIntegerTypeErrors(t *testing.T) {
	for _, sel := range []string{"plus:", "minus:", "multiplyBy:", "divBy:", "greaterThan:"} {
		_, err := eval(t, send(intLit(1), sel, strLit("2")))
		if KindOf(err) != KindTypeError {
			t.Errorf("1 %s '2': error = %v, want TypeError", sel, err)
		}
	}
}

func TestIntegerComparison(t *testing.T) {
	wantPrim(t, mustEval(t, send(intLit(3), "greaterThan:", intLit(2))), PrimTrue)
	wantPrim(t, mustEval(t, send(intLit(2), "greaterThan:", intLit(2))), PrimFalse)
	wantPrim(t, mustEval(t, send(intLit(2), "equalTo:", intLit(2))), PrimTrue)
	wantPrim(t, mustEval(t, send(intLit(2), "equalTo:", ref("nil"))), PrimFalse)
}

func TestIntegerConversions(t *testing.T) {
	wantStr(t, mustEval(t, send(intLit(0), "asString")), "0")
	wantInt(t, mustEval(t, send(intLit(8), "asInteger")), 8)
}

func TestIntegerTimesRepeat(t *testing.T) {
	tests := []struct {
		n         int64
		wantCount int64
		wantLast  string
	}{
		{3, 3, "3"},
		{1, 1, "1"},
		{0, 0, ""},
		{-2, 0, ""},
	}
	for _, tt := range tests {
		result, out, err := runWithOutput(t, mainRun(
			assign("_", send(ref("self"), "count:", intLit(0))),
			assign("_", send(intLit(tt.n), "timesRepeat:", block([]string{"i"},
				assign("_", send(ref("self"), "count:", send(send(ref("self"), "count"), "plus:", intLit(1)))),
				assign("_", send(send(ref("i"), "asString"), "print")),
			))),
			assign("r", send(ref("self"), "count")),
		), "")
		if err != nil {
			t.Fatalf("%d timesRepeat: %v", tt.n, err)
		}
		wantInt(t, result, tt.wantCount)
		if tt.wantLast != "" && out[len(out)-1:] != tt.wantLast {
			t.Errorf("%d timesRepeat: output %q should end with %q", tt.n, out, tt.wantLast)
		}
		if tt.wantCount == 0 && out != "" {
			t.Errorf("%d timesRepeat: block should not run, got output %q", tt.n, out)
		}
	}
}

func TestIntegerTimesRepeatCounterStartsAtOne(t *testing.T) {
	_, out, err := runWithOutput(t, mainRun(
		assign("_", send(intLit(3), "timesRepeat:", block([]string{"i"},
			assign("_", send(send(ref("i"), "asString"), "print")),
		))),
	), "")
	if err != nil {
		t.Fatal(err)
	}
	if out != "123" {
		t.Errorf("output = %q, want %q", out, "123")
	}
}

func TestIntegerTimesRepeatPropagatesError(t *testing.T) {
	_, err := eval(t, send(intLit(2), "timesRepeat:", block([]string{"i"},
		assign("_", send(ref("i"), "divBy:", intLit(0))),
	)))
	wantKind(t, err, ErrValueError)
}
