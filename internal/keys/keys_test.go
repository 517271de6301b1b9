package keys

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Foo", "foo"},
		{" Foo   Bar ", "foo bar"},
		{"foo bar", "foo bar"},
		{"FOO\tBAR", "foo bar"},
		{"a  b\n c", "a b c"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{" Foo   Bar ", "already normal", "", "MiXeD  Case"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent on %q: %q != %q", in, once, twice)
		}
	}
}

func TestKeyNamespacesShareNormalization(t *testing.T) {
	if EventKey(" Chess  Masters ") != NameKey(" Chess  Masters ") {
		t.Error("EventKey and NameKey must compute identical keys")
	}
}
