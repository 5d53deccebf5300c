package analyzer

import (
	"image"
	"image/color"
	"sort"
)

// mask marks pixels for which match returns true
func mask(img image.Image, match func(c color.Color) bool) *image.Gray {
	bounds := img.Bounds()
	out := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if match(img.At(x, y)) {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	return out
}

// dilate performs morphological dilation to connect nearby marks
func dilate(img *image.Gray, kernelSize, iterations int) *image.Gray {
	bounds := img.Bounds()
	result := image.NewGray(bounds)
	copy(result.Pix, img.Pix)

	half := kernelSize / 2

	for iter := 0; iter < iterations; iter++ {
		temp := image.NewGray(bounds)

		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				maxVal := uint8(0)

				for ky := -half; ky <= half; ky++ {
					for kx := -half; kx <= half; kx++ {
						p := image.Point{X: x + kx, Y: y + ky}
						if !p.In(bounds) {
							continue
						}
						if val := result.GrayAt(p.X, p.Y).Y; val > maxVal {
							maxVal = val
						}
					}
				}

				temp.SetGray(x, y, color.Gray{Y: maxVal})
			}
		}

		result = temp
	}

	return result
}

// components finds the connected marked regions of img. counted, when not
// nil, decides which pixels contribute to Block.Pixels; it lets a dilated
// mask group regions while the count still reflects the original marks.
func components(img, counted *image.Gray, minArea int) []Block {
	bounds := img.Bounds()
	visited := make([][]bool, bounds.Dy())
	for i := range visited {
		visited[i] = make([]bool, bounds.Dx())
	}
	if counted == nil {
		counted = img
	}

	blocks := []Block{}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if img.GrayAt(x, y).Y > 128 && !visited[y-bounds.Min.Y][x-bounds.Min.X] {
				b := floodFill(img, counted, visited, x, y)
				if b.Pixels >= minArea {
					blocks = append(blocks, b)
				}
			}
		}
	}

	// Largest region first
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Pixels > blocks[j].Pixels
	})

	return blocks
}

// floodFill walks the region containing (startX, startY) and returns its
// bounding rectangle
func floodFill(img, counted *image.Gray, visited [][]bool, startX, startY int) Block {
	bounds := img.Bounds()
	minX, minY := startX, startY
	maxX, maxY := startX, startY
	pixels := 0

	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		x, y := p.X, p.Y

		if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}

		if visited[y-bounds.Min.Y][x-bounds.Min.X] || img.GrayAt(x, y).Y <= 128 {
			continue
		}

		visited[y-bounds.Min.Y][x-bounds.Min.X] = true
		if counted.GrayAt(x, y).Y > 128 {
			pixels++
		}

		minX = min(minX, x)
		maxX = max(maxX, x)
		minY = min(minY, y)
		maxY = max(maxY, y)

		stack = append(stack,
			image.Point{X: x + 1, Y: y},
			image.Point{X: x - 1, Y: y},
			image.Point{X: x, Y: y + 1},
			image.Point{X: x, Y: y - 1},
		)
	}

	return Block{Rect: image.Rect(minX, minY, maxX+1, maxY+1), Pixels: pixels}
}

// distance is the largest per-channel difference between two colors, in
// 8-bit units
func distance(a, b color.Color) int {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	d := 0
	for _, pair := range [][2]uint32{{ar, br}, {ag, bg}, {ab, bb}, {aa, ba}} {
		diff := int(pair[0]>>8) - int(pair[1]>>8)
		if diff < 0 {
			diff = -diff
		}
		d = max(d, diff)
	}
	return d
}
