package types

import "testing"

func TestEqual(t *testing.T) {
	cases := []struct {
		a, b Type
		want bool
	}{
		{Scalar(Int), Scalar(Int), true},
		{Scalar(Int), Scalar(UInt), false},
		{Scalar(Int), ListOf(Int), false},
		{RecordType("Point", false), RecordType("Point", false), true},
		{RecordType("Point", false), RecordType("Line", false), false},
		{RecordType("Point", true), RecordType("Point", false), false},
	}
	for _, c := range cases {
		if got := Equal(c.a, c.b); got != c.want {
			t.Errorf("Equal(%s, %s) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestLess(t *testing.T) {
	cases := []struct {
		a, b Type
		want bool
	}{
		{Scalar(Bool), Scalar(Int), true},
		{Scalar(Bool), Scalar(Double), true},
		{Scalar(Char), Scalar(Int), true},
		{Scalar(Int), Scalar(Double), true},
		{Scalar(UInt), Scalar(Double), true},
		{Scalar(Int), Scalar(Bool), false},
		{Scalar(Char), Scalar(UInt), false},
		{Scalar(Double), Scalar(Int), false},
		{ListOf(Bool), ListOf(Int), false},
	}
	for _, c := range cases {
		if got := Less(c.a, c.b); got != c.want {
			t.Errorf("Less(%s, %s) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestLarger(t *testing.T) {
	cases := []struct {
		a, b, want Type
	}{
		{Scalar(Bool), Scalar(Int), Scalar(Int)},
		{Scalar(Int), Scalar(Bool), Scalar(Int)},
		{Scalar(Int), Scalar(Int), Scalar(Int)},
		{Scalar(Char), Scalar(Double), InvalidType},
		{Scalar(Char), Scalar(UInt), InvalidType},
	}
	for _, c := range cases {
		if got := Larger(c.a, c.b); !Equal(got, c.want) {
			t.Errorf("Larger(%s, %s) = %s, want %s", c.a, c.b, got, c.want)
		}
	}
}

func TestAssignableTo(t *testing.T) {
	if ok, upcast := AssignableTo(Scalar(Int), Scalar(Int)); !ok || upcast {
		t.Errorf("Int -> Int: ok=%v upcast=%v, want true/false", ok, upcast)
	}
	if ok, upcast := AssignableTo(Scalar(Bool), Scalar(Int)); !ok || !upcast {
		t.Errorf("Bool -> Int: ok=%v upcast=%v, want true/true", ok, upcast)
	}
	if ok, _ := AssignableTo(Scalar(Double), Scalar(Int)); ok {
		t.Error("Double -> Int should not be assignable")
	}
	if ok, _ := AssignableTo(Scalar(Int), ListOf(Int)); ok {
		t.Error("Int -> int[] should not be assignable")
	}
}

func TestComparable(t *testing.T) {
	if !Comparable(Scalar(Bool), Scalar(Int)) {
		t.Error("Bool and Int should be comparable (Bool < Int)")
	}
	if !Comparable(Scalar(Int), Scalar(Int)) {
		t.Error("a type should be comparable with itself")
	}
	if Comparable(Scalar(Char), Scalar(UInt)) {
		t.Error("Char and UInt should not be comparable")
	}
}

func TestStringRendersListAndRecord(t *testing.T) {
	if got := ListOf(Int).String(); got != "Int[]" {
		t.Errorf("ListOf(Int).String() = %q, want %q", got, "Int[]")
	}
	if got := RecordType("Point", true).String(); got != "Point[]" {
		t.Errorf("RecordType(\"Point\", true).String() = %q, want %q", got, "Point[]")
	}
}
