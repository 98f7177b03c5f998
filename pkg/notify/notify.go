// Package notify delivers best-effort desktop notifications. Delivery is
// advisory: missing helpers and failed commands are swallowed so callers
// never block or observe an error.
package notify

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Notifier is the dispatch boundary the daemon and UI talk to.
type Notifier interface {
	Notify(title, body string)
}

// Desktop dispatches through the host's notification mechanism and plays a
// short sound when a player is available.
type Desktop struct {
	AppName string
	// Silent disables the sound attempt.
	Silent bool
}

// Notify sends the notification and returns immediately; the helper
// commands run detached and their exit status is ignored.
func (d Desktop) Notify(title, body string) {
	name := d.AppName
	if name == "" {
		name = "HABIT"
	}
	switch runtime.GOOS {
	case "linux":
		start(exec.Command("notify-send", "-a", name, title, body))
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", body, title)
		start(exec.Command("osascript", "-e", script))
	case "windows":
		script := fmt.Sprintf("[System.Reflection.Assembly]::LoadWithPartialName('System.Windows.Forms'); [System.Windows.Forms.MessageBox]::Show(%q, %q)", body, title)
		start(exec.Command("powershell", "-Command", script))
	}
	if !d.Silent {
		d.playSound()
	}
}

func (d Desktop) playSound() {
	if runtime.GOOS != "linux" {
		return
	}
	players := [][]string{
		{"paplay", "/usr/share/sounds/freedesktop/stereo/message.oga"},
		{"aplay", "/usr/share/sounds/alsa/Front_Center.wav"},
	}
	for _, p := range players {
		if start(exec.Command(p[0], p[1:]...)) {
			return
		}
	}
}

func start(cmd *exec.Cmd) bool {
	if err := cmd.Start(); err != nil {
		return false
	}
	// Reap the child without waiting on it here.
	go func() { _ = cmd.Wait() }()
	return true
}

// Discard drops every notification. Useful in tests.
type Discard struct{}

// Notify implements Notifier.
func (Discard) Notify(title, body string) {}
