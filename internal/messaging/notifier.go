package messaging

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-quest/internal/display"
	"github.com/pixil98/go-quest/internal/game"
)

var templateFuncs = sprig.TxtFuncMap()

// Notice is a line of text addressed to a single player.
type Notice struct {
	To   game.PlayerID
	Text string
}

// NoticeTemplate renders the text one party of an event receives. To picks
// the party out of the event.
type NoticeTemplate struct {
	To   func(game.Event) game.PlayerID
	Text string
}

func toPlayer(ev game.Event) game.PlayerID    { return ev.Player }
func toRecipient(ev game.Event) game.PlayerID { return ev.Recipient }

// DefaultNotices are the notices sent for each event type.
var DefaultNotices = map[game.EventType][]NoticeTemplate{
	game.EventPlayerRegistered: {
		{To: toPlayer, Text: `welcome to the hunt, {{ .Name }}! Your energy is full and the map awaits.`},
	},
	game.EventLocationExplored: {
		{To: toPlayer, Text: `you search {{ .Name | default "an unnamed place" }}{{ with .Kind }} ({{ . }}){{ end }} and feel a little wiser.`},
	},
	game.EventTreasureClaimed: {
		{To: toPlayer, Text: `you claim {{ .Name | default "a nameless treasure" }} worth {{ .Amount }}!`},
	},
	game.EventTreasureTransferred: {
		{To: toPlayer, Text: `you hand {{ .Name | default "a nameless treasure" }} to {{ .Recipient }}.`},
		{To: toRecipient, Text: `{{ .Player }} hands you {{ .Name | default "a nameless treasure" }}.`},
	},
}

type compiledNotice struct {
	to   func(game.Event) game.PlayerID
	tmpl *template.Template
}

// Notifier renders player notices for game events.
type Notifier struct {
	notices map[game.EventType][]compiledNotice
}

// NewNotifier parses the given notice templates.
func NewNotifier(notices map[game.EventType][]NoticeTemplate) (*Notifier, error) {
	el := errors.NewErrorList()
	n := &Notifier{notices: make(map[game.EventType][]compiledNotice, len(notices))}

	for evType, nts := range notices {
		for i, nt := range nts {
			if nt.To == nil {
				el.Add(fmt.Errorf("%s notice %d: no recipient", evType, i))
				continue
			}
			tmpl, err := template.New(string(evType)).Funcs(templateFuncs).Parse(nt.Text)
			if err != nil {
				el.Add(fmt.Errorf("%s notice %d: parsing template: %w", evType, i, err))
				continue
			}
			n.notices[evType] = append(n.notices[evType], compiledNotice{to: nt.To, tmpl: tmpl})
		}
	}

	if err := el.Err(); err != nil {
		return nil, err
	}
	return n, nil
}

// Render returns the notices for ev. Notices whose recipient is empty are
// skipped.
func (n *Notifier) Render(ev game.Event) ([]Notice, error) {
	el := errors.NewErrorList()
	var out []Notice

	for _, cn := range n.notices[ev.Type] {
		to := cn.to(ev)
		if to == "" {
			continue
		}

		var buf bytes.Buffer
		if err := cn.tmpl.Execute(&buf, ev); err != nil {
			el.Add(fmt.Errorf("executing template: %w", err))
			continue
		}
		out = append(out, Notice{To: to, Text: display.Wrap(display.Capitalize(buf.String()))})
	}

	return out, el.Err()
}
