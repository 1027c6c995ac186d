package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// ppmLineLimit is the longest line a plain PPM writer may emit
const ppmLineLimit = 70

// WritePPM writes the canvas as a plain-text (P3) PPM image. Each canvas row
// starts on a new line and long rows wrap before 70 characters.
func WritePPM(w io.Writer, canvas *renderer.Canvas) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", canvas.Width, canvas.Height)

	line := make([]byte, 0, ppmLineLimit)
	flush := func() {
		if len(line) > 0 {
			bw.Write(line)
			bw.WriteByte('\n')
			line = line[:0]
		}
	}

	for y := 0; y < canvas.Height; y++ {
		for x := 0; x < canvas.Width; x++ {
			c := canvas.At(x, y)
			for _, component := range [3]float64{c.X, c.Y, c.Z} {
				token := strconv.Itoa(int(renderer.ColorByte(component)))
				if len(line) > 0 && len(line)+1+len(token) > ppmLineLimit {
					flush()
				}
				if len(line) > 0 {
					line = append(line, ' ')
				}
				line = append(line, token...)
			}
		}
		flush()
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return nil
}

// SavePPM writes the canvas to a PPM file
func SavePPM(filename string, canvas *renderer.Canvas) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer file.Close()

	return WritePPM(file, canvas)
}
