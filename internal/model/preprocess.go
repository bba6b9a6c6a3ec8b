package model

import (
	"image"

	"github.com/nfnt/resize"
)

// ImageNet per-channel means in BGR order, matching the ResNet50 training
// preprocessing.
var channelMeans = [3]float32{103.939, 116.779, 123.68}

// preprocessImage converts img into the tensor the network was trained on:
// size×size pixels, HWC layout, BGR channel order, mean-subtracted 0–255
// values. This must stay in lockstep with the training-side transform; a
// mismatch degrades accuracy silently instead of failing.
func preprocessImage(img image.Image, size int) []float32 {
	resized := resize.Resize(uint(size), uint(size), img, resize.Lanczos3)

	bounds := resized.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	inputData := make([]float32, width*height*3)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := resized.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()

			idx := (y*width + x) * 3
			inputData[idx] = float32(b>>8) - channelMeans[0]
			inputData[idx+1] = float32(g>>8) - channelMeans[1]
			inputData[idx+2] = float32(r>>8) - channelMeans[2]
		}
	}

	return inputData
}
