// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package content

import (
	"bytes"
	"image"

	// decoders available to LoadImage
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
)

// Image is a decoded image together with the number of color channels
// its encoding carried. Channels is informational, the color space a
// texture is created with is chosen by the caller.
type Image struct {
	image.Image
	Channels int
}

// LoadImage decodes the image stored under name. EXIF orientation is
// applied to jpeg and tiff images.
func LoadImage(src Source, name string) (Image, error) {
	data, err := LoadBytes(src, name)
	if err != nil {
		return Image{}, err
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return Image{}, &ReadError{Name: name, Err: err}
	}
	return Image{
		Image:    img,
		Channels: channels(img),
	}, nil
}

func channels(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr, *image.CMYK:
		return 3
	}
	return 4
}
