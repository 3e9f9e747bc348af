package normalize

import "testing"

func TestFold_Table(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"ascii case", "Ivan PETROV", "ivan petrov"},
		{"cyrillic case", "Иван Петров", "иван петров"},
		{"latin accents", "José Müller", "jose muller"},
		{"hyphen and spaces", "  Петров-Йорданов  ", "петров иорданов"},
		{"fullwidth", "ＧＥＲＢ", "gerb"},
		{"zero width", "Ива​н", "иван"},
		{"controls dropped", "a\x00b\x07c", "abc"},
		{"punctuation only", "--", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Fold(tc.in); got != tc.want {
				t.Fatalf("Fold(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	t.Parallel()
	if !Contains("Бойко Методиев Борисов", "борисов") {
		t.Fatalf("expected case insensitive match")
	}
	if !Contains("Bulgarian Socialist Party", "") {
		t.Fatalf("empty needle should match")
	}
	if Contains("ГЕРБ", "ДПС") {
		t.Fatalf("unexpected match")
	}
}

func TestTitle(t *testing.T) {
	t.Parallel()
	cases := []struct{ in, want string }{
		{"  ИВАН ГЕОРГИЕВ-ДИМОВ ", "Иван Георгиев-Димов"},
		{"ЙОРДАНКА", "Йорданка"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Title(c.in); got != c.want {
			t.Errorf("Title(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()
	in := "line one\nline\x1b[31m two\x7f\t\xff"
	want := "line one\nline[31m two\t"
	if got := Sanitize(in); got != want {
		t.Fatalf("Sanitize = %q, want %q", got, want)
	}
	ok := "Уважаеми колеги,\nблагодаря."
	if got := Sanitize(ok); got != ok {
		t.Fatalf("clean text changed: %q", got)
	}
}
