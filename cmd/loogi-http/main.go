// Command loogi-http sends HTTP requests from the command line.
package main

import "github.com/JuulLabs-OSS/loogi-http/internal/cli"

// main is the entry point of the application.
func main() {
	cli.Execute()
}
