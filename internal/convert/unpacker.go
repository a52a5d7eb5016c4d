package convert

import (
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"floatscene/internal/utils"
)

// PkgVersion is written at the head of bundles produced by WritePkg.
const PkgVersion = "PKGV0001"

type FileEntry struct {
	Name   string
	Offset uint32
	Size   uint32
}

func readPkgString(r io.Reader) (string, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return "", err
	}
	if size > 1<<16 {
		return "", fmt.Errorf("string length %d too large", size)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writePkgString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// ReadPkgIndex reads the header and file table of a bundle. It returns the
// entries and the offset where file data starts.
func ReadPkgIndex(r io.ReadSeeker) (string, []FileEntry, int64, error) {
	version, err := readPkgString(r)
	if err != nil {
		return "", nil, 0, fmt.Errorf("read version: %w", err)
	}
	if !strings.HasPrefix(version, "PKGV") {
		return "", nil, 0, fmt.Errorf("not a package: version %q", version)
	}

	var fileCount uint32
	if err := binary.Read(r, binary.LittleEndian, &fileCount); err != nil {
		return "", nil, 0, fmt.Errorf("read file count: %w", err)
	}

	entries := make([]FileEntry, 0, fileCount)
	for i := uint32(0); i < fileCount; i++ {
		name, err := readPkgString(r)
		if err != nil {
			return "", nil, 0, fmt.Errorf("read entry %d name: %w", i, err)
		}
		var offset, size uint32
		if err := binary.Read(r, binary.LittleEndian, &offset); err != nil {
			return "", nil, 0, fmt.Errorf("read entry %d offset: %w", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return "", nil, 0, fmt.Errorf("read entry %d size: %w", i, err)
		}
		entries = append(entries, FileEntry{Name: name, Offset: offset, Size: size})
	}

	dataStart, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return "", nil, 0, err
	}
	return version, entries, dataStart, nil
}

// ExtractPkg unpacks every entry of the bundle at pkgPath into outputDir.
func ExtractPkg(pkgPath, outputDir string) error {
	utils.Debug("Unpacker: Opening package %s", pkgPath)
	f, err := os.Open(pkgPath)
	if err != nil {
		return err
	}
	defer f.Close()

	version, entries, dataStart, err := ReadPkgIndex(f)
	if err != nil {
		return fmt.Errorf("%s: %w", pkgPath, err)
	}
	utils.Debug("Unpacker: Package Version: %s, %d files", version, len(entries))

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	root, err := filepath.Abs(outputDir)
	if err != nil {
		return err
	}

	for i, entry := range entries {
		destPath := filepath.Join(root, filepath.FromSlash(entry.Name))
		if destPath != root && !strings.HasPrefix(destPath, root+string(filepath.Separator)) {
			return fmt.Errorf("entry %q escapes output directory", entry.Name)
		}

		utils.Debug("Unpacker: Extracting file %d/%d: %s", i+1, len(entries), entry.Name)
		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return err
		}

		if _, err := f.Seek(dataStart+int64(entry.Offset), io.SeekStart); err != nil {
			return err
		}

		outF, err := os.Create(destPath)
		if err != nil {
			return err
		}

		_, err = io.CopyN(outF, f, int64(entry.Size))
		outF.Close()
		if err != nil {
			return fmt.Errorf("extract %s: %w", entry.Name, err)
		}
	}

	utils.Info("Unpacker: extracted %d files to %s", len(entries), outputDir)
	return nil
}

// WritePkg bundles every regular file under dir into a package at outPath.
// Entry names are slash-separated paths relative to dir.
func WritePkg(dir, outPath string) (err error) {
	var names []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			names = append(names, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}

	entries := make([]FileEntry, len(names))
	var offset uint32
	for i, name := range names {
		info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name)))
		if err != nil {
			return err
		}
		entries[i] = FileEntry{Name: name, Offset: offset, Size: uint32(info.Size())}
		offset += uint32(info.Size())
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", outPath, cerr)
		}
	}()

	if err := writePkgString(out, PkgVersion); err != nil {
		return err
	}
	if err := binary.Write(out, binary.LittleEndian, uint32(len(entries))); err != nil {
		return err
	}
	for _, e := range entries {
		if err := writePkgString(out, e.Name); err != nil {
			return err
		}
		if err := binary.Write(out, binary.LittleEndian, e.Offset); err != nil {
			return err
		}
		if err := binary.Write(out, binary.LittleEndian, e.Size); err != nil {
			return err
		}
	}

	for _, e := range entries {
		in, err := os.Open(filepath.Join(dir, filepath.FromSlash(e.Name)))
		if err != nil {
			return err
		}
		_, err = io.CopyN(out, in, int64(e.Size))
		in.Close()
		if err != nil {
			return fmt.Errorf("pack %s: %w", e.Name, err)
		}
	}

	utils.Info("Packer: wrote %d files to %s", len(entries), outPath)
	return nil
}
