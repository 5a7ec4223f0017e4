package core

import "errors"

// Window construction failures wrap one of these sentinels so callers can
// distinguish "the platform library never started" from "the requested GL
// version/profile is unavailable". Both are fatal: no partially-initialized
// window is ever returned.
var (
	ErrInitialization  = errors.New("platform initialization failed")
	ErrContextCreation = errors.New("graphics context creation failed")
)
