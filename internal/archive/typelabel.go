package archive

import (
	"path"
	"strings"
)

var typeLabels = map[string]string{
	"txt":  "Text document",
	"jpg":  "Image",
	"jpeg": "Image",
	"png":  "Image",
	"gif":  "Image",
	"bmp":  "Image",
	"pdf":  "PDF document",
	"doc":  "Word document",
	"docx": "Word document",
	"xls":  "Excel spreadsheet",
	"xlsx": "Excel spreadsheet",
	"ppt":  "PowerPoint presentation",
	"pptx": "PowerPoint presentation",
	"zip":  "Archive",
	"rar":  "Archive",
	"7z":   "Archive",
	"tar":  "Archive",
	"gz":   "Archive",
	"bz2":  "Archive",
	"exe":  "Executable",
	"msi":  "Executable",
	"dll":  "Application extension",
	"ini":  "Configuration file",
	"cfg":  "Configuration file",
	"conf": "Configuration file",
	"json": "Configuration file",
	"xml":  "Configuration file",
	"yaml": "Configuration file",
	"toml": "Configuration file",
	"log":  "Log file",
	"md":   "Markdown document",
	"html": "HTML document",
	"htm":  "HTML document",
	"css":  "Stylesheet",
	"js":   "Script",
	"ts":   "Script",
	"py":   "Python script",
	"java": "Java source",
	"c":    "C/C++ source",
	"cpp":  "C/C++ source",
	"h":    "C/C++ source",
	"cs":   "C# source",
	"sh":   "Shell script",
	"bat":  "Batch script",
	"mp3":  "Audio",
	"wav":  "Audio",
	"ogg":  "Audio",
	"flac": "Audio",
	"mp4":  "Video",
	"mkv":  "Video",
	"avi":  "Video",
	"mov":  "Video",
	"wmv":  "Video",
	"iso":  "Disc image",
}

// TypeLabelFor derives the human-readable kind shown in the type column.
func TypeLabelFor(entryPath string, isDir bool) string {
	if isDir {
		return "Folder"
	}
	ext := strings.TrimPrefix(path.Ext(strings.TrimSuffix(entryPath, "/")), ".")
	if ext == "" {
		return "File"
	}
	if label, ok := typeLabels[strings.ToLower(ext)]; ok {
		return label
	}
	return strings.ToUpper(ext) + " file"
}
