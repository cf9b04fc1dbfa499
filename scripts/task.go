//go:build ignore

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	task := os.Args[1]
	args := os.Args[2:]

	switch task {
	case "build":
		run("go", "build", "-o", "bin/resolvtron", "./cmd/resolvtron")
	case "test":
		run("go", "test", "-v", "./...")
	case "test-coverage":
		run("go", "test", "-coverprofile=coverage.out", "./...")
		run("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
	case "install":
		run("go", "install", "./cmd/resolvtron")
	case "fmt":
		run("go", "fmt", "./...")
	case "lint":
		run("golangci-lint", "run")
	case "clean":
		clean()
	case "run":
		run("go", append([]string{"run", "./cmd/resolvtron"}, args...)...)
	case "examples":
		// Evaluate every bundled example case file
		matches, err := filepath.Glob("examples/checkout.*")
		if err != nil || len(matches) == 0 {
			fmt.Println("Error: no example case files found in examples/")
			os.Exit(1)
		}
		for _, file := range matches {
			fmt.Printf("==> %s\n", file)
			run("go", "run", "./cmd/resolvtron", "eval", "-f", file, "-o", "table")
		}
	default:
		fmt.Printf("Unknown task: %s\n\n", task)
		printUsage()
		os.Exit(1)
	}
}

func run(command string, args ...string) {
	cmd := exec.Command(command, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	if err := cmd.Run(); err != nil {
		fmt.Printf("Error: Command failed: %s %v\n", command, args)
		os.Exit(1)
	}
}

func clean() {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := os.RemoveAll(path); err != nil {
			fmt.Printf("Warning: Failed to remove %s: %v\n", path, err)
		}
	}
	fmt.Println("Cleaned build artifacts")
}

func printUsage() {
	exe := filepath.Base(os.Args[0])
	fmt.Printf("Usage: go run %s <task> [args...]\n\n", exe)
	fmt.Println("Available tasks:")
	fmt.Println("  build           - Build the resolvtron binary")
	fmt.Println("  test            - Run all tests")
	fmt.Println("  test-coverage   - Run tests with coverage report")
	fmt.Println("  examples        - Evaluate the case files in examples/")
	fmt.Println("  install         - Install the binary to $GOPATH/bin")
	fmt.Println("  fmt             - Format code")
	fmt.Println("  lint            - Run linter (requires golangci-lint)")
	fmt.Println("  clean           - Remove build artifacts")
	fmt.Println("  run [args...]   - Run the CLI locally (passes args to CLI)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  go run %s build\n", exe)
	fmt.Printf("  go run %s run resolve --condition --baseline 100\n", exe)
	fmt.Printf("  go run %s run eval -f examples/checkout.yaml\n", exe)
}
