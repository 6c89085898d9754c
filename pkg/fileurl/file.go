package fileurl

import (
	"os"
	"path/filepath"
	"strings"
)

// IsDir determines if the given path is a directory
// IsDir 判断所给路径是否为文件夹
func IsDir(path string) bool {
	s, err := os.Stat(path)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// IsExist determines if the given path exists
// IsExist 判断所给路径是否存在
func IsExist(path string) bool {
	_, err := os.Stat(path)
	return err == nil || os.IsExist(err)
}

// CreatePath creates the parent directory for the given file path
// CreatePath 为所给文件路径创建父级目录
func CreatePath(file string, perm os.FileMode) error {
	dir := filepath.Dir(file)
	if dir == "" || IsDir(dir) {
		return nil
	}
	return os.MkdirAll(dir, perm)
}

// GetExePath gets the directory of the current executable
// GetExePath 获取当前可执行文件所在目录
func GetExePath() string {
	exe, err := os.Executable()
	if err != nil {
		dir, _ := os.Getwd()
		return dir
	}
	dir := filepath.Dir(exe)
	// go run 场景下可执行文件位于临时目录，回退到工作目录
	if strings.Contains(dir, os.TempDir()) {
		wd, _ := os.Getwd()
		return wd
	}
	return dir
}
