package ai

import "testing"

func TestDecodeJSONBlockPlain(t *testing.T) {
	var out struct {
		Name string `json:"name"`
	}
	if err := decodeJSONBlock(`{"name":"Push Day"}`, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Name != "Push Day" {
		t.Fatalf("got %q", out.Name)
	}
}

func TestDecodeJSONBlockFenced(t *testing.T) {
	reply := "Here is your program:\n```json\n{\"name\":\"Pull Day\"}\n```\nEnjoy!"
	var out struct {
		Name string `json:"name"`
	}
	if err := decodeJSONBlock(reply, &out); err != nil {
		t.Fatalf("decode fenced: %v", err)
	}
	if out.Name != "Pull Day" {
		t.Fatalf("got %q", out.Name)
	}
}

func TestDecodeJSONBlockBareFence(t *testing.T) {
	reply := "```\n{\"name\":\"Legs\"}\n```"
	var out struct {
		Name string `json:"name"`
	}
	if err := decodeJSONBlock(reply, &out); err != nil {
		t.Fatalf("decode bare fence: %v", err)
	}
	if out.Name != "Legs" {
		t.Fatalf("got %q", out.Name)
	}
}

func TestDecodeJSONBlockSurroundingProse(t *testing.T) {
	reply := `Sure! {"calories": 420, "note": "about {one} serving"} Hope that helps.`
	var out struct {
		Calories float64 `json:"calories"`
		Note     string  `json:"note"`
	}
	if err := decodeJSONBlock(reply, &out); err != nil {
		t.Fatalf("decode with prose: %v", err)
	}
	if out.Calories != 420 || out.Note != "about {one} serving" {
		t.Fatalf("got %+v", out)
	}
}

func TestDecodeJSONBlockNested(t *testing.T) {
	reply := `{"outer":{"inner":{"value":3}},"tail":"x"}`
	var out struct {
		Outer struct {
			Inner struct {
				Value int `json:"value"`
			} `json:"inner"`
		} `json:"outer"`
		Tail string `json:"tail"`
	}
	if err := decodeJSONBlock(reply, &out); err != nil {
		t.Fatalf("decode nested: %v", err)
	}
	if out.Outer.Inner.Value != 3 || out.Tail != "x" {
		t.Fatalf("got %+v", out)
	}
}

func TestDecodeJSONBlockErrors(t *testing.T) {
	var out map[string]any
	if err := decodeJSONBlock("no json here at all", &out); err == nil {
		t.Fatalf("expected error when no object is present")
	}
	if err := decodeJSONBlock(`{"unterminated": true`, &out); err == nil {
		t.Fatalf("expected error for an unterminated object")
	}
	if err := decodeJSONBlock(`{"broken": }`, &out); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}
