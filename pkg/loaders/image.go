package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/df07/go-pathtracer/pkg/texture"
)

// LoadTexture loads a PNG or JPEG image into a texture
func LoadTexture(filename string) (*texture.Texture, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Format is detected from the file header
	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	logger.Debugf("decoded %s image %s (%dx%d)", format, filename, img.Bounds().Dx(), img.Bounds().Dy())

	return texture.FromImage(img), nil
}
