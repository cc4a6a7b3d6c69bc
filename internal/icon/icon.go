// Package icon draws the perch application icon programmatically, so no
// binary assets need to be checked in. cmd/mkicon writes it to a PNG for
// packaging; the tray uses the in-memory encoding directly.
package icon

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

var (
	bg     = color.RGBA{R: 26, G: 27, B: 38, A: 255}    // #1a1b26
	accent = color.RGBA{R: 122, G: 162, B: 247, A: 255} // #7aa2f7
	branch = color.RGBA{R: 158, G: 206, B: 106, A: 255} // #9ece6a
)

// Draw renders the icon at the given square size: a round badge with a
// perched dot over a branch line.
func Draw(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	cx, cy := float64(size)/2, float64(size)/2
	badgeR := float64(size) * 0.48
	birdR := float64(size) * 0.16
	birdCY := float64(size) * 0.40
	branchY := float64(size) * 0.62
	branchHalf := float64(size) * 0.30
	branchThick := float64(size) * 0.04

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5

			dx, dy := fx-cx, fy-cy
			if dx*dx+dy*dy > badgeR*badgeR {
				continue // transparent outside the badge
			}
			img.SetRGBA(x, y, bg)

			// Branch bar.
			if fy >= branchY-branchThick && fy <= branchY+branchThick &&
				fx >= cx-branchHalf && fx <= cx+branchHalf {
				img.SetRGBA(x, y, branch)
			}

			// Bird body sitting on the branch.
			bdx, bdy := fx-cx, fy-birdCY
			if bdx*bdx+bdy*bdy <= birdR*birdR {
				img.SetRGBA(x, y, accent)
			}
		}
	}
	return img
}

// PNG returns the icon PNG-encoded at the given size.
func PNG(size int) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Draw(size)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
