package path

import (
	"os"
	"path/filepath"
	"runtime"
)

// RootPath 專案根目錄：/project/utils/path/path.go → /project
func RootPath() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("unable to resolve caller location")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
}

// Resolve 相對路徑接在 base 之下，絕對路徑原樣回傳
func Resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func Exists(p string) (bool, error) {
	_, err := os.Stat(p)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, err
	}
}
