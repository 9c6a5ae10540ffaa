package sections

import "testing"

func TestParseMarkedTips(t *testing.T) {
	text := `[INTRO]
Quick intro sentence.
[TIPS]
1. **First tip**: Do the first thing.
2. **Second tip** Do the second thing.
3. **Third tip**. Do the third thing.`

	parsed := parseMarkedTips(text)

	if parsed.Intro != "Quick intro sentence." {
		t.Errorf("Intro: got %q", parsed.Intro)
	}
	if len(parsed.Tips) != 3 {
		t.Fatalf("Expected 3 tips, got %d", len(parsed.Tips))
	}
	wantTitles := []string{"First tip", "Second tip", "Third tip"}
	for i, title := range wantTitles {
		if parsed.Tips[i].MiniTitle != title {
			t.Errorf("Tip %d title: got %q, want %q", i, parsed.Tips[i].MiniTitle, title)
		}
		if parsed.Tips[i].Content == "" {
			t.Errorf("Tip %d has empty content", i)
		}
	}
}

func TestParseMarkedTipsWithoutMarkers(t *testing.T) {
	text := `Here is some advice.
1. **Only tip** The content.`

	parsed := parseMarkedTips(text)

	if len(parsed.Tips) != 1 || parsed.Tips[0].MiniTitle != "Only tip" {
		t.Fatalf("Expected numbered-bold parsing without markers: %+v", parsed.Tips)
	}
	if parsed.Intro != "Here is some advice." {
		t.Errorf("Intro should exclude the tip list, got %q", parsed.Intro)
	}
}

func TestParseMarkedTipsOpaqueFallback(t *testing.T) {
	text := "Just a paragraph of advice with no structure at all."

	parsed := parseMarkedTips(text)

	if len(parsed.Tips) != 0 {
		t.Errorf("Expected no tips, got %d", len(parsed.Tips))
	}
	if parsed.Intro != text {
		t.Errorf("Whole text should become the intro, got %q", parsed.Intro)
	}
}

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced no lang", "```\n[1,2]\n```", `[1,2]`},
		{"padded", "  ```json\n{}\n```  ", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripCodeFences(tc.in); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
