package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// File permissions
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
	CmdCommand      = "cmd"
	StartCommand    = "start"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
	WindowsCmdFlag     = "/c"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// OpenFileInManager opens the file in the system file manager and highlights it
func OpenFileInManager(filePath string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return fmt.Errorf("file does not exist: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin: // macOS
		return openFileInFinderMacOS(absPath)
	case OSWindows:
		return openFileInExplorerWindows(absPath)
	case OSLinux:
		return openFileInManagerLinux(absPath)
	case OSAndroid:
		return openFileInManagerAndroid(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openFileInFinderMacOS opens file in Finder on macOS with selection
func openFileInFinderMacOS(filePath string) error {
	cmd := exec.Command(OpenCommand, MacOSSelectFlag, filePath)
	return cmd.Run()
}

// openFileInExplorerWindows opens file in Explorer on Windows with selection
func openFileInExplorerWindows(filePath string) error {
	cmd := exec.Command(ExplorerCommand, WindowsSelectParam, filePath)
	return cmd.Run()
}

// openFileInManagerLinux opens directory containing file on Linux
// Note: File selection is not standardized on Linux, so we open the parent directory
func openFileInManagerLinux(filePath string) error {
	dir := filepath.Dir(filePath)

	// Try xdg-open first (most common)
	cmd := exec.Command(XDGOpenCommand, dir)
	if err := cmd.Run(); err == nil {
		return nil
	}

	// Fallback to common file managers
	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			cmd := exec.Command(fm, dir)
			return cmd.Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}

// openFileInManagerAndroid opens the Downloads tree in a file manager on Android
func openFileInManagerAndroid(filePath string) error {
	cmd := exec.Command("am", "start", "-a", "android.intent.action.VIEW", "-d", "content://com.android.externalstorage.documents/root/primary/Download")
	if err := cmd.Run(); err == nil {
		return nil
	}

	dir := filepath.Dir(filePath)
	cmd = exec.Command("am", "start", "-a", "android.intent.action.VIEW", "-d", "file://"+dir)
	if err := cmd.Run(); err == nil {
		return nil
	}

	return fmt.Errorf("failed to open file in manager: no suitable file manager found")
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// OpenFileWithDefaultApp opens the file with the default system application
func OpenFileWithDefaultApp(filePath string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return fmt.Errorf("file does not exist: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin: // macOS
		return openFileWithDefaultAppMacOS(absPath)
	case OSWindows:
		return openFileWithDefaultAppWindows(absPath)
	case OSLinux:
		return openFileWithDefaultAppLinux(absPath)
	case OSAndroid:
		return openFileWithDefaultAppAndroid(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openFileWithDefaultAppMacOS opens file with default app on macOS
func openFileWithDefaultAppMacOS(filePath string) error {
	cmd := exec.Command(OpenCommand, filePath)
	return cmd.Run()
}

// openFileWithDefaultAppWindows opens file with default app on Windows
func openFileWithDefaultAppWindows(filePath string) error {
	cmd := exec.Command(CmdCommand, WindowsCmdFlag, StartCommand, "", filePath)
	return cmd.Run()
}

// openFileWithDefaultAppLinux opens file with default app on Linux
func openFileWithDefaultAppLinux(filePath string) error {
	// Try xdg-open first (most common)
	cmd := exec.Command(XDGOpenCommand, filePath)
	return cmd.Run()
}

// openFileWithDefaultAppAndroid opens an image with the default viewer on Android
func openFileWithDefaultAppAndroid(filePath string) error {
	cmd := exec.Command("am", "start", "-a", "android.intent.action.VIEW", "-d", "file://"+filePath, "-t", "image/*")
	if err := cmd.Run(); err == nil {
		return nil
	}

	// Let the system decide without a MIME type
	cmd = exec.Command("am", "start", "-a", "android.intent.action.VIEW", "-d", "file://"+filePath)
	if err := cmd.Run(); err == nil {
		return nil
	}

	return fmt.Errorf("failed to open file with any method: no suitable app found")
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	// For Android, use the external storage Downloads directory
	// Check multiple ways to detect Android environment
	isAndroid := runtime.GOOS == "android" ||
		os.Getenv("ANDROID_DATA") != "" ||
		os.Getenv("ANDROID_ROOT") != "" ||
		os.Getenv("ANDROID_STORAGE") != "" ||
		filepath.Base(os.Args[0]) == "libdist.so" // Fyne Android apps run as libdist.so

	if isAndroid {
		// Use external storage Downloads directory so files appear in the
		// file manager. Works with Scoped Storage on Android 11+.
		downloadsDir := "/sdcard/Download"
		return downloadsDir, nil
	}

	// For other platforms, use the standard Downloads directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	downloadsDir := filepath.Join(homeDir, "Downloads")
	return downloadsDir, nil
}
