// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/palette-dots/pkg/types"
)

// Recorder is an in-memory canvas that keeps call counts and logs each
// operation at debug level. It backs the "none" canvas kind.
type Recorder struct {
	*Surface
	log logrus.FieldLogger

	DotCalls   int
	ClearCalls int
	SaveCalls  int
}

// NewRecorder returns a Recorder logging to log. A nil log discards output.
func NewRecorder(log logrus.FieldLogger) *Recorder {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Recorder{Surface: NewSurface(), log: log}
}

func (r *Recorder) SetBackground(c types.Color) {
	r.log.WithField("color", c.String()).Debug("canvas: background")
	r.Surface.SetBackground(c)
}

func (r *Recorder) Dot(diameter int) {
	r.DotCalls++
	pos := r.Position()
	r.log.WithFields(logrus.Fields{
		"x":        pos.X,
		"y":        pos.Y,
		"diameter": diameter,
		"color":    r.PenColor().Hex(),
	}).Debug("canvas: dot")
	r.Surface.Dot(diameter)
}

func (r *Recorder) Clear() {
	r.ClearCalls++
	r.log.Debug("canvas: clear")
	r.Surface.Clear()
}

func (r *Recorder) Save() error {
	r.SaveCalls++
	r.log.WithField("dots", len(r.Dots())).Debug("canvas: save")
	return nil
}
