// Go-BMP rotates and blurs a 24-bit bitmap, writing one file per transform
package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/anas-shakeel/go-bmp/internal/adjustments"
	"github.com/anas-shakeel/go-bmp/internal/bmp"
	"github.com/anas-shakeel/go-bmp/internal/config"
	"github.com/anas-shakeel/go-bmp/internal/filters"
)

type job struct {
	name      string
	output    string
	transform func(*bmp.BitmapImage)
}

func main() {
	conf := config.NewConfig()
	if env := os.Getenv("BMP_CONFIG"); env != "" {
		var err error
		conf, err = config.NewConfigFromFile("", env)
		if err != nil {
			logrus.Fatal(err)
		}
	}
	if err := conf.Apply(); err != nil {
		logrus.Fatal(err)
	}

	jobs := []job{
		{"rotate-cw", conf.Outputs.RotateCW, adjustments.RotateClockwise},
		{"rotate-ccw", conf.Outputs.RotateCCW, adjustments.RotateCounterClockwise},
		{"blur", conf.Outputs.Blur, filters.GaussianBlur},
	}

	// Each job loads its own copy; failures are reported and skipped
	for _, j := range jobs {
		if err := run(conf, j, os.Stdout); err != nil {
			logrus.WithField("job", j.name).Error(err)
			continue
		}
		logrus.WithField("job", j.name).Infof("saved %s", j.output)
	}
}

func run(conf *config.Config, j job, out io.Writer) error {
	bitmap, err := bmp.ReadBitmap(conf.Input, bmp.WithPadding(!conf.PackedRows))
	if err != nil {
		return err
	}
	if conf.PrintMetadata {
		bitmap.PrintMetadata(out)
	}

	j.transform(bitmap)
	if conf.PrintBitmap {
		bitmap.PrintBitmap(out)
	}

	return bitmap.Save(j.output)
}
