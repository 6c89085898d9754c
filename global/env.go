package global

import (
	"github.com/haierkeys/note-capsule-service/pkg/fileurl"
)

var (
	// 程序执行目录
	ROOT string
	Name string = "Note Capsule Service"
)

func init() {

	filename := fileurl.GetExePath()
	ROOT = filename + "/"

}
