// Command spotiqueue-worker is built with -buildmode=c-archive and linked into
// the Spotiqueue host application. It exports two C functions:
//
//	bool spotiqueue_initialize_worker(const char* username, const char* password);
//	bool spotiqueue_play_track(const char* spotify_uri);
//
// Both are safe to call from any thread. Both block: the first for the
// duration of the login, the second until the worker takes the command.
package main

/*
#include <stdbool.h>
#include <stdlib.h>
#include <string.h>
*/
import "C"

import (
	"unsafe"

	"github.com/sirupsen/logrus"
)

//export spotiqueue_initialize_worker
func spotiqueue_initialize_worker(username, password *C.char) (ok C.bool) {
	defer recoverExport("spotiqueue_initialize_worker", &ok)
	proc := process()
	if proc == nil {
		return false
	}
	return C.bool(proc.InitializeWorker(goBytes(username), goBytes(password)))
}

//export spotiqueue_play_track
func spotiqueue_play_track(spotifyURI *C.char) (ok C.bool) {
	defer recoverExport("spotiqueue_play_track", &ok)
	proc := process()
	if proc == nil {
		return false
	}
	return C.bool(proc.PlayTrack(goBytes(spotifyURI)))
}

// goBytes copies a NUL-terminated C string. NULL maps to nil.
func goBytes(p *C.char) []byte {
	if p == nil {
		return nil
	}
	n := C.strlen(p)
	if n == 0 {
		return []byte{}
	}
	return C.GoBytes(unsafe.Pointer(p), C.int(n))
}

func recoverExport(name string, ok *C.bool) {
	if r := recover(); r != nil {
		logrus.WithFields(logrus.Fields{
			"export": name,
			"panic":  r,
		}).Error("Recovered panic at C boundary")
		*ok = false
	}
}

func main() {}
