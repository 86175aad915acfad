// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package pigeonhole

import (
	"sync/atomic"

	"github.com/MGibson1/pigeonhole/log"
)

type atomicBool int32

func (b *atomicBool) isSet() bool { return atomic.LoadInt32((*int32)(b)) != 0 }
func (b *atomicBool) setTrue()    { atomic.StoreInt32((*int32)(b), 1) }
func (b *atomicBool) setFalse()   { atomic.StoreInt32((*int32)(b), 0) }

var testMode atomicBool

// InTestMode returns the test mode flag status. When enabled, the KDF and
// chunker packages trade their production cost parameters for cheap ones so
// that tests run in milliseconds instead of seconds.
func InTestMode() bool {
	return testMode.isSet()
}

// SetTestMode enables test mode in this package and returns a function to
// revert the configuration.
//
// Calling this method multiple times once the flag is enabled produces no effect.
func SetTestMode() (revert func()) {
	// Prevent multiple calls to indirectly disable the flag
	if testMode.isSet() {
		return func() {}
	}

	testMode.setTrue()
	log.Level(log.DebugLevel).Message("pigeonhole: test mode enabled")

	return func() {
		testMode.setFalse()
		log.Level(log.DebugLevel).Message("pigeonhole: test mode disabled")
	}
}
