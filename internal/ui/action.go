// Package ui turns catalog pages into renderable button grids and gives
// every clickable element an opaque token that fully reconstructs the
// action behind it. The tokens replace server-side session state: whatever
// page, filter and sort a user was looking at rides along inside the
// element they click.
package ui

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/franz/soundbot/internal/catalog"
	"github.com/franz/soundbot/internal/util"
)

const (
	// Namespace prefixes every token this service emits; anything else
	// decodes to Unknown and is left for other handlers.
	Namespace = "sbd"

	// Sep joins token fields. Free text is percent-encoded before joining,
	// so the separator can never occur inside a field.
	Sep = "::"

	// MaxTokenLen is the hard ceiling messaging platforms put on component
	// identifiers
	MaxTokenLen = 80
)

// Direction is a pagination move
type Direction int

const (
	First Direction = iota
	Prev
	Next
	Last
)

// String returns the stable wire name of the direction
func (d Direction) String() string {
	switch d {
	case Prev:
		return "prev"
	case Next:
		return "next"
	case Last:
		return "last"
	default:
		return "first"
	}
}

// ParseDirection maps a wire name back to a direction
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "first":
		return First, true
	case "prev":
		return Prev, true
	case "next":
		return Next, true
	case "last":
		return Last, true
	}
	return First, false
}

// Action is the closed set of things a UI element can trigger
type Action interface {
	isAction()
}

// PlaySound plays the sound with the given catalog id
type PlaySound struct {
	ID int64
}

// PlayRandom plays a uniformly random sound
type PlayRandom struct{}

// OpenSearch opens the free-text search prompt
type OpenSearch struct{}

// SelectDisplay switches the grid to a browsing preset
type SelectDisplay struct {
	Kind catalog.QueryKind
}

// Paginate moves to another page window of a preset. Search carries the
// raw query text for the Search preset and is empty otherwise.
type Paginate struct {
	Kind   catalog.QueryKind
	Dir    Direction
	Offset int64
	Search string
}

// Unknown is any token this service did not mint. Decoding never fails on
// foreign tokens; callers decide whether Unknown matters.
type Unknown struct {
	Raw string
}

func (PlaySound) isAction()     {}
func (PlayRandom) isAction()    {}
func (OpenSearch) isAction()    {}
func (SelectDisplay) isAction() {}
func (Paginate) isAction()      {}
func (Unknown) isAction()       {}

func join(fields ...string) string {
	return Namespace + Sep + strings.Join(fields, Sep)
}

// Encode renders an action as an opaque ASCII token.
// Decode(Encode(a)) == a for every constructible action.
func Encode(a Action) string {
	switch v := a.(type) {
	case PlaySound:
		return join("play", strconv.FormatInt(v.ID, 10))
	case PlayRandom:
		return join("play_random")
	case OpenSearch:
		return join("search")
	case SelectDisplay:
		return join("display", v.Kind.String())
	case Paginate:
		fields := []string{"page", v.Kind.String(), v.Dir.String(), strconv.FormatInt(v.Offset, 10)}
		if v.Kind == catalog.QuerySearch {
			fields = append(fields, url.QueryEscape(v.Search))
		}
		return join(fields...)
	case Unknown:
		return v.Raw
	default:
		panic(fmt.Sprintf("unhandled action type %T", a))
	}
}

// Decode reconstructs an action from a token. Tokens outside our namespace
// and unrecognized verbs come back as Unknown, never as an error; a
// recognized verb with a malformed payload (unparseable offset or id,
// missing fields, broken escaping) is always an error, never silently
// defaulted.
func Decode(token string) (Action, error) {
	parts := strings.Split(token, Sep)
	if parts[0] != Namespace || len(parts) < 2 {
		return Unknown{Raw: token}, nil
	}

	switch parts[1] {
	case "play":
		if len(parts) < 3 {
			return nil, fmt.Errorf("play token %q missing id: %w", token, util.ErrInvalidToken)
		}
		id, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			util.ErrorLog("parse error on play token id %q: %v", token, err)
			return nil, fmt.Errorf("play token %q: %w", token, util.ErrInvalidToken)
		}
		return PlaySound{ID: id}, nil

	case "play_random":
		return PlayRandom{}, nil

	case "search":
		return OpenSearch{}, nil

	case "display":
		if len(parts) < 3 {
			return nil, fmt.Errorf("display token %q missing kind: %w", token, util.ErrInvalidToken)
		}
		kind, ok := catalog.ParseQueryKind(parts[2])
		if !ok {
			return Unknown{Raw: token}, nil
		}
		return SelectDisplay{Kind: kind}, nil

	case "page":
		if len(parts) < 5 {
			return nil, fmt.Errorf("page token %q missing fields: %w", token, util.ErrInvalidToken)
		}

		kind, ok := catalog.ParseQueryKind(parts[2])
		if !ok {
			return Unknown{Raw: token}, nil
		}
		dir, ok := ParseDirection(parts[3])
		if !ok {
			return Unknown{Raw: token}, nil
		}

		offset, err := strconv.ParseInt(parts[4], 10, 64)
		if err != nil {
			util.ErrorLog("parse error on page token offset %q: %v", token, err)
			return nil, fmt.Errorf("page token %q: %w", token, util.ErrInvalidToken)
		}

		action := Paginate{Kind: kind, Dir: dir, Offset: offset}
		if kind == catalog.QuerySearch {
			// Rejoin everything after the offset verbatim, then unescape:
			// tolerates separator sequences inside the trailing text.
			search, err := url.QueryUnescape(strings.Join(parts[5:], Sep))
			if err != nil {
				return nil, fmt.Errorf("page token %q search text: %w", token, util.ErrInvalidToken)
			}
			action.Search = search
		}
		return action, nil

	default:
		return Unknown{Raw: token}, nil
	}
}
