package wailshost

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"runtime"

	"github.com/energye/systray"

	"github.com/perchhq/perch/internal/host"
	"github.com/perchhq/perch/internal/icon"
)

// tray wraps the energye systray lifecycle. systray.Run blocks, so it
// lives on its own goroutine locked to an OS thread: the hidden window
// systray creates and its message loop must share that thread.
type tray struct{}

func newTray(a *App, onEvent func(host.TrayEvent)) (*tray, error) {
	iconPNG, err := icon.PNG(256)
	if err != nil {
		return nil, fmt.Errorf("render tray icon: %w", err)
	}
	t := &tray{}
	go func() {
		runtime.LockOSThread()
		systray.Run(func() { trayReady(a, trayIconBytes(iconPNG), onEvent) }, func() {})
	}()
	return t, nil
}

func (t *tray) stop() {
	systray.Quit()
}

func trayReady(a *App, iconData []byte, onEvent func(host.TrayEvent)) {
	systray.SetIcon(iconData)
	systray.SetTooltip("perch")

	systray.SetOnClick(func(menu systray.IMenu) {
		onEvent(host.TrayEvent{Kind: host.TrayClick})
	})
	systray.SetOnDClick(func(menu systray.IMenu) {
		onEvent(host.TrayEvent{Kind: host.TrayDoubleClick})
		showMain(a)
	})
	systray.SetOnRClick(func(menu systray.IMenu) {
		onEvent(host.TrayEvent{Kind: host.TrayRightClick})
		menu.ShowMenu()
	})

	mShow := systray.AddMenuItem("Open perch", "Show the perch window")
	mShow.Click(func() { showMain(a) })

	systray.AddSeparator()

	mQuit := systray.AddMenuItem("Quit", "Exit perch")
	mQuit.Click(func() {
		systray.Quit()
		a.quit()
	})
}

func showMain(a *App) {
	if w, ok := a.Window(host.MainWindow); ok {
		w.Show()
	}
}

// trayIconBytes returns the icon in the format the platform tray
// expects: ICO on Windows, PNG elsewhere.
func trayIconBytes(png []byte) []byte {
	if runtime.GOOS == "windows" {
		return pngToICO(png)
	}
	return png
}

// pngToICO wraps raw PNG bytes in a minimal ICO container.
// Windows LoadImage(IMAGE_ICON) requires ICO format; since Vista,
// ICO supports embedded PNG data directly.
func pngToICO(png []byte) []byte {
	buf := new(bytes.Buffer)
	// ICONDIR header
	binary.Write(buf, binary.LittleEndian, uint16(0)) // reserved
	binary.Write(buf, binary.LittleEndian, uint16(1)) // type: 1 = ICO
	binary.Write(buf, binary.LittleEndian, uint16(1)) // count: 1 image

	// ICONDIRENTRY
	buf.WriteByte(0) // width (0 = 256)
	buf.WriteByte(0) // height (0 = 256)
	buf.WriteByte(0) // color count
	buf.WriteByte(0) // reserved
	binary.Write(buf, binary.LittleEndian, uint16(1))        // color planes
	binary.Write(buf, binary.LittleEndian, uint16(32))       // bits per pixel
	binary.Write(buf, binary.LittleEndian, uint32(len(png))) // image data size
	binary.Write(buf, binary.LittleEndian, uint32(6+1*16))   // offset to image data (header + 1 entry)

	// PNG data
	buf.Write(png)
	return buf.Bytes()
}
