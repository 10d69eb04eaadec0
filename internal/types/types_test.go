package types

import "testing"

func TestAssignableQualifierRank(t *testing.T) {
	tests := []struct {
		name   string
		target Type
		source Type
		want   bool
	}{
		{"const into series", New(Int), Qualified(Const, Int), true},
		{"series into const", Qualified(Const, Int), New(Int), false},
		{"input into simple", Qualified(Simple, Int), Qualified(Input, Int), true},
		{"simple into input", Qualified(Input, Int), Qualified(Simple, Int), false},
		{"equal rank", New(Int), New(Int), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Assignable(tt.target, tt.source); got != tt.want {
				t.Errorf("Assignable(%v, %v) = %v, want %v", tt.target, tt.source, got, tt.want)
			}
		})
	}
}

func TestAssignableBaseWidening(t *testing.T) {
	if !Assignable(New(Float), New(Int)) {
		t.Errorf("expected int assignable to float (widening)")
	}
	if Assignable(New(Int), New(Float)) {
		t.Errorf("expected float NOT assignable to int (narrowing)")
	}
}

func TestAssignableNAAndAny(t *testing.T) {
	if !Assignable(New(Int), New(NA)) {
		t.Errorf("expected na assignable to any base type")
	}
	if !Assignable(New(Any), New(String)) {
		t.Errorf("expected anything assignable to any")
	}
	if !Assignable(New(Int), New(Any)) {
		t.Errorf("expected any assignable to anything (target side)")
	}
}

func TestAssignableParameterizedTypes(t *testing.T) {
	arrInt := New(Array{Elem: Int})
	arrFloat := New(Array{Elem: Float})
	arrString := New(Array{Elem: String})

	if !Assignable(arrFloat, arrInt) {
		t.Errorf("expected array<int> assignable to array<float> (elementwise widening)")
	}
	if Assignable(arrString, arrInt) {
		t.Errorf("expected array<int> NOT assignable to array<string>")
	}
}

func TestAssignableMismatchedBases(t *testing.T) {
	if Assignable(New(Bool), New(String)) {
		t.Errorf("expected string NOT assignable to bool")
	}
}

func TestBinaryResultQualifier(t *testing.T) {
	if got := BinaryResultQualifier(Const, Series); got != Series {
		t.Errorf("expected series (max rank), got %v", got)
	}
	if got := BinaryResultQualifier(Input, Const); got != Input {
		t.Errorf("expected input (max rank), got %v", got)
	}
}

func TestBinaryResultBase(t *testing.T) {
	tests := []struct {
		op          string
		left, right BaseType
		want        BaseType
	}{
		{"==", Int, Float, Bool},
		{"+", String, String, String},
		{"+", Int, Float, Float},
		{"+", Int, Int, Int},
		{"-", Int, Float, Float},
		{"and", Bool, Bool, Bool},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			if got := BinaryResultBase(tt.op, tt.left, tt.right); got != tt.want {
				t.Errorf("BinaryResultBase(%q, %v, %v) = %v, want %v", tt.op, tt.left, tt.right, got, tt.want)
			}
		})
	}
}

func TestParseHint(t *testing.T) {
	tests := []struct {
		hint string
		want Type
	}{
		{"int", New(Int)},
		{"series int", Qualified(Series, Int)},
		{"const float", Qualified(Const, Float)},
		{"input bool", Qualified(Input, Bool)},
		{"", New(Any)},
	}
	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			got := ParseHint(tt.hint)
			if got.Qualifier != tt.want.Qualifier || got.Base != tt.want.Base {
				t.Errorf("ParseHint(%q) = %v, want %v", tt.hint, got, tt.want)
			}
		})
	}
}

func TestParseHintParameterized(t *testing.T) {
	got := ParseHint("array<float>")
	arr, ok := got.Base.(Array)
	if !ok {
		t.Fatalf("expected Array base, got %T", got.Base)
	}
	if arr.Elem != Float {
		t.Errorf("expected elem float, got %v", arr.Elem)
	}

	got = ParseHint("map<string,int>")
	m, ok := got.Base.(Map)
	if !ok {
		t.Fatalf("expected Map base, got %T", got.Base)
	}
	if m.Key != String || m.Val != Int {
		t.Errorf("expected map<string,int>, got map<%v,%v>", m.Key, m.Val)
	}
}

func TestStringRoundTrip(t *testing.T) {
	ty := Qualified(Input, Float)
	if got, want := ty.String(), "input float"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
