// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

package pxl

import (
	"sync/atomic"

	"github.com/pixealed/go-pxl/log"
)

type atomicBool int32

func (b *atomicBool) isSet() bool { return atomic.LoadInt32((*int32)(b)) != 0 }
func (b *atomicBool) setTrue()    { atomic.StoreInt32((*int32)(b), 1) }
func (b *atomicBool) setFalse()   { atomic.StoreInt32((*int32)(b), 0) }

// -----------------------------------------------------------------------------

var devMode atomicBool

// InDevMode returns the development mode flag status.
//
// When enabled, verification entry points log the internal failure cause at
// debug level before collapsing it to a boolean result.
func InDevMode() bool {
	return devMode.isSet()
}

// SetDevMode enables the local development mode in this package and returns a
// function to revert the configuration.
//
// Calling this method multiple times once the flag is enabled produces no effect.
func SetDevMode() (revert func()) {
	// Prevent multiple calls to indirectly disable the flag
	if devMode.isSet() {
		return func() {}
	}

	devMode.setTrue()
	log.Level(log.DebugLevel).Message("pxl: Development mode enabled")

	return func() {
		devMode.setFalse()
		log.Level(log.DebugLevel).Message("pxl: Development mode disabled")
	}
}
