// Package process terminates browser processes left behind by rod's launcher.
package process
