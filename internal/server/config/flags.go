package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/paintmap/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3000")
//	-o string   comma separated CORS origins
//	-i string   id generator: microtime | uuid
//	-m string   image store: none | s3
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-l string   log level
//	-x string   metrics endpoint enabled (true/false)
//	-t int      shutdown timeout, seconds
//
// Flags that are not given leave the current value untouched.
func parseFlags(config *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-o", "-i", "-m", "-u", "-p", "-b", "-g", "-e", "-l", "-x", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	origins := fs.String("o", strings.Join(config.CORSAllowedOrigins, ","), "CORS allowed origins")
	fs.StringVar(&config.IDGenerator, "i", config.IDGenerator, "id generator (microtime|uuid)")
	fs.StringVar(&config.ImageStore, "m", config.ImageStore, "image store (none|s3)")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	metrics := fs.String("x", strconv.FormatBool(config.MetricsEnabled), "serve /metrics")
	shutdown := fs.Int("t", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["o"] {
		config.CORSAllowedOrigins = flagx.SplitList(*origins)
	}
	if set["x"] {
		enabled, err := strconv.ParseBool(*metrics)
		if err != nil {
			return fmt.Errorf("flag -x: %w", err)
		}
		config.MetricsEnabled = enabled
	}
	if set["t"] {
		config.ShutdownTimeout = time.Duration(*shutdown) * time.Second
	}
	return nil
}
