package teams

import (
	"reflect"
	"testing"
)

func TestTeamJSONTags(t *testing.T) {
	type fieldCheck struct {
		name string
		tag  string
	}
	teamType := reflect.TypeOf(Team{})
	fields := []fieldCheck{
		{"ID", "id"},
		{"Name", "name"},
		{"ShortName", "shortName"},
		{"TLA", "tla"},
	}
	for _, fc := range fields {
		f, ok := teamType.FieldByName(fc.name)
		if !ok {
			t.Fatalf("missing field %s", fc.name)
		}
		if tag := f.Tag.Get("json"); tag != fc.tag {
			t.Fatalf("field %s expected tag %s, got %s", fc.name, fc.tag, tag)
		}
	}
}

func TestDisplayNameFallsBack(t *testing.T) {
	cases := []struct {
		team Team
		want string
	}{
		{Team{Name: " Arsenal FC ", ShortName: "Arsenal"}, "Arsenal FC"},
		{Team{Name: " ", ShortName: "Spurs", TLA: "TOT"}, "Spurs"},
		{Team{TLA: "LEE"}, "LEE"},
		{FromUpstream(57, "", "", ""), "57"},
		{FromUpstream(0, "", "", ""), ""},
	}
	for _, tc := range cases {
		if got := tc.team.DisplayName(); got != tc.want {
			t.Fatalf("DisplayName(%+v) = %q, want %q", tc.team, got, tc.want)
		}
	}
}
