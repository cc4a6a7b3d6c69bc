package deeplink

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Link
		wantErr bool
	}{
		{
			name: "host path query",
			raw:  "perch://inbox/item?id=5",
			want: Link{Raw: "perch://inbox/item?id=5", Host: "inbox", Path: "/item", Query: "id=5"},
		},
		{
			name: "host only",
			raw:  "perch://settings",
			want: Link{Raw: "perch://settings", Host: "settings"},
		},
		{
			name: "scheme case-insensitive",
			raw:  "PERCH://inbox",
			want: Link{Raw: "PERCH://inbox", Host: "inbox"},
		},
		{name: "wrong scheme", raw: "https://inbox/item", wantErr: true},
		{name: "no scheme", raw: "inbox/item", wantErr: true},
		{name: "unparseable", raw: "perch://%zz", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse("perch", tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %t", tt.raw, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFromArgs(t *testing.T) {
	args := []string{
		"--config", "perch.json",
		"perch://inbox/item?id=5",
		"https://not-a-deeplink.example",
		"perch://settings",
	}
	got := FromArgs("perch", args)
	want := []Link{
		{Raw: "perch://inbox/item?id=5", Host: "inbox", Path: "/item", Query: "id=5"},
		{Raw: "perch://settings", Host: "settings"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromArgs = %+v, want %+v", got, want)
	}
}

func TestFromArgsEmpty(t *testing.T) {
	if got := FromArgs("perch", []string{"--config", "x.json"}); got != nil {
		t.Errorf("FromArgs = %+v, want nil", got)
	}
}

func TestServiceCurrent(t *testing.T) {
	ig := New("perch", []string{"perch://inbox"})
	links := ig.svc.Current()
	if len(links) != 1 || links[0].Host != "inbox" {
		t.Errorf("Current = %+v", links)
	}
}
