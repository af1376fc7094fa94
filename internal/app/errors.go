package app

import "errors"

// ErrHeadless is returned by the viewer in builds without the ebiten tag.
var ErrHeadless = errors.New("app: viewer requires building with -tags ebiten")
