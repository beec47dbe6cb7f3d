package model

import (
	"encoding/json"
	"strconv"
)

func (c CurveType) MarshalText() ([]byte, error)        { return keywordText(c.Keyword(), c.String()) }
func (a ArcType) MarshalText() ([]byte, error)          { return keywordText(a.Keyword(), a.String()) }
func (c CameraEasing) MarshalText() ([]byte, error)     { return keywordText(c.Keyword(), c.String()) }
func (s SceneControlType) MarshalText() ([]byte, error) { return keywordText(s.Keyword(), s.String()) }

func keywordText(keyword, fallback string) ([]byte, error) {
	if keyword == "" {
		return []byte(fallback), nil
	}
	return []byte(keyword), nil
}

type timingGroupJSON struct {
	Index  int               `json:"index"`
	Params []string          `json:"params"`
	Events []json.RawMessage `json:"events"`
}

// MarshalJSON writes each event as an object with a "type" field naming its
// variant.
func (g *TimingGroup) MarshalJSON() ([]byte, error) {
	out := timingGroupJSON{
		Index:  g.Index,
		Params: g.Params,
		Events: make([]json.RawMessage, 0, len(g.Events)),
	}
	if out.Params == nil {
		out.Params = []string{}
	}
	for _, e := range g.Events {
		raw, err := marshalEvent(e)
		if err != nil {
			return nil, err
		}
		out.Events = append(out.Events, raw)
	}
	return json.Marshal(out)
}

func marshalEvent(e Event) (json.RawMessage, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	head := `{"type":` + strconv.Quote(e.Kind().String())
	if len(body) <= 2 {
		return json.RawMessage(head + "}"), nil
	}
	return json.RawMessage(head + "," + string(body[1:])), nil
}
