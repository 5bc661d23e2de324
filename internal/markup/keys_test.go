package markup

import "testing"

func TestMakeKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Dev Tools", "dev_tools"},
		{"  Reading List  ", "reading_list"},
		{"C++ & Go!", "c_go"},
		{"already_a_key", "already_a_key"},
		{"UPPER", "upper"},
		{"--- ", ""},
		{"a  b\tc", "a_b_c"},
	}
	for _, c := range cases {
		if got := MakeKey(c.in); got != c.want {
			t.Errorf("MakeKey(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMakeAccent(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"blue", "blue"},
		{"Bright Blue", "bright-blue"},
		{"blue_grey", "blue-grey"},
		{"  ROSE  ", "rose"},
		{`re"d`, "re-d"},
		{"---", ""},
	}
	for _, c := range cases {
		if got := MakeAccent(c.in); got != c.want {
			t.Errorf("MakeAccent(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTitleFromKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"dev_tools", "Dev Tools"},
		{"reading", "Reading"},
		{"a_b_c", "A B C"},
	}
	for _, c := range cases {
		if got := TitleFromKey(c.in); got != c.want {
			t.Errorf("TitleFromKey(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMarkerBuilders(t *testing.T) {
	if got := containerStartMarker("dev"); got != "<!-- CONTAINER_DEV_CONTENT_START -->" {
		t.Errorf("containerStartMarker = %q", got)
	}
	if got := containerEndMarker("dev"); got != "<!-- CONTAINER_DEV_CONTENT_END -->" {
		t.Errorf("containerEndMarker = %q", got)
	}
	if got := linksEndMarker("dev_tools"); got != "<!-- DEV_TOOLS_LINKS_END -->" {
		t.Errorf("linksEndMarker = %q", got)
	}
}
