package loaders

import "github.com/df07/go-pathtracer/pkg/log"

var logger = log.New("loaders")
