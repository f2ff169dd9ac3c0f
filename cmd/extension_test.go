package cmd

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	tempDir := t.TempDir()

	// 1. Create a horizon-hello executable that prints the environment it gets.
	helloCmdSource := fmt.Sprintf(`
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("args=%%v\n", os.Args[1:])
}
`, EnvConfig, EnvConfig, EnvWorkspace, EnvWorkspace, EnvVerbose, EnvVerbose)

	helloCmdPath := filepath.Join(tempDir, "horizon-hello")
	srcFile := helloCmdPath + ".go"
	if err := os.WriteFile(srcFile, []byte(helloCmdSource), 0644); err != nil {
		t.Fatalf("Failed to write horizon-hello source: %v", err)
	}

	cmd := exec.Command("go", "build", "-o", helloCmdPath, srcFile)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile horizon-hello: %v", err)
	}
	log.Printf("Compiled horizon-hello to %s", helloCmdPath)

	// 2. Compile the main horizon binary.
	binaryPath := filepath.Join(tempDir, "horizon")
	cmd = exec.Command("go", "build", "-o", binaryPath, "../horizon")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile horizon binary: %v", err)
	}

	expectedConfig := filepath.Join(tempDir, "random.toml")
	expectedWorkspace := filepath.Join(tempDir, "random.json")

	// 3. Call horizon with the extension and global flags.
	args := []string{
		"-config", expectedConfig,
		"-workspace", expectedWorkspace,
		"-v",
		"hello", // The extension subcommand
		"world",
	}
	horizonCmd := exec.Command(binaryPath, args...)
	horizonCmd.Dir = tempDir
	horizonCmd.Env = []string{"PATH=" + tempDir + string(os.PathListSeparator) + os.Getenv("PATH")}

	var stdout, stderr bytes.Buffer
	horizonCmd.Stdout = &stdout
	horizonCmd.Stderr = &stderr

	if err := horizonCmd.Run(); err != nil {
		t.Fatalf("horizon command failed: %v\nStdout: %s\nStderr: %s", err, stdout.String(), stderr.String())
	}

	// 4. Verify output.
	output := stdout.String()
	expected := []string{
		EnvConfig + "=" + expectedConfig,
		EnvWorkspace + "=" + expectedWorkspace,
		EnvVerbose + "=" + strconv.FormatBool(true),
		"args=[world]",
	}
	for _, line := range expected {
		if !strings.Contains(output, line) {
			t.Errorf("Expected output to contain %q, but got:\n%s", line, output)
		}
	}

	if stderr.Len() > 0 {
		t.Logf("Stderr from horizon command: %s", stderr.String())
	}
}
