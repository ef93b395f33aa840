package bridge

import "errors"

// Sentinel errors returned by the bridge's command surface.
var (
	ErrNetworkNotFound        = errors.New("bridge: network not found")
	ErrNetworkExists          = errors.New("bridge: network already exists")
	ErrNoLibraryLoaded        = errors.New("bridge: no library loaded, call LoadLibrary first")
	ErrNetworkNotInLibrary    = errors.New("bridge: network not found in loaded library")
	ErrUnsupportedVersion     = errors.New("bridge: design file version is newer than this build supports")
	ErrInvalidDesignFile      = errors.New("bridge: malformed design file")
	ErrNoEnergyMinimizer      = errors.New("bridge: no energy minimizer installed, call SetEnergyMinimizer first")
	ErrNetworkHasNoReturnNode = errors.New("bridge: network has no return node set, call SetReturnNode first")
)
