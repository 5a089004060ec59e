package factory

import "testing"

type widget struct{ Size int }

func TestRegistryCreate(t *testing.T) {
	reg := NewRegistry[*widget]()
	err := reg.Register("widget", func(conf map[string]any) (*widget, error) {
		var c struct {
			Size int `json:"size"`
		}
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &widget{Size: c.Size}, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	w, err := reg.Create(ModuleConfig{Type: "widget", Conf: map[string]any{"size": 3}})
	if err != nil {
		t.Fatal(err)
	}
	if w.Size != 3 {
		t.Errorf("size = %d", w.Size)
	}

	if _, err := reg.Create(ModuleConfig{Type: "gadget"}); err == nil {
		t.Error("unknown type must fail")
	}
	if err := reg.Register("widget", func(map[string]any) (*widget, error) { return nil, nil }); err == nil {
		t.Error("duplicate registration must fail")
	}
}
