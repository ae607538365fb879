package fulpack

import (
	"archive/tar"
	"archive/zip"
	"compress/flate"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/shadowdp-go/shadowdp/fingerprint"
)

// createImpl implements the Create operation.
func createImpl(sources []string, output string, format ArchiveFormat, options *CreateOptions) (*ArchiveInfo, error) {
	start := time.Now()
	var err error
	var info *ArchiveInfo

	defer func() {
		duration := time.Since(start)
		var entryCount int
		var bytesProcessed int64
		if info != nil {
			entryCount = info.EntryCount
			bytesProcessed = info.TotalSize
		}
		emitOperationMetrics(OperationCreate, format, duration, entryCount, bytesProcessed, err)
	}()

	// Apply defaults
	opts := applyCreateDefaults(options)

	// Validate sources
	if len(sources) == 0 {
		err = newError(ErrCodeInvalidFormat, "no source files specified", OperationCreate, "", nil)
		return nil, err
	}

	// Validate output path
	if output == "" {
		err = newError(ErrCodeInvalidFormat, "output path cannot be empty", OperationCreate, "", nil)
		return nil, err
	}

	// Initialize archive info
	info = &ArchiveInfo{
		Format:      format,
		Compression: getCompressionType(format),
		EntryCount:  0,
		TotalSize:   0,
		Checksums:   make(map[string]string),
	}

	// Discover source files using pathfinder
	filesToArchive, discoverErr := discoverSourceFiles(sources, opts)
	if discoverErr != nil {
		err = discoverErr
		return nil, err
	}

	// Create archive based on format
	switch format {
	case ArchiveFormatTAR:
		err = createTar(output, filesToArchive, opts, info)
	case ArchiveFormatTARGZ:
		err = createTarGz(output, filesToArchive, opts, info)
	case ArchiveFormatZIP:
		err = createZip(output, filesToArchive, opts, info)
	case ArchiveFormatGZIP:
		err = createGzip(output, filesToArchive, opts, info)
	default:
		err = newError(ErrCodeInvalidFormat, "unsupported archive format", OperationCreate, output, nil)
		return nil, err
	}

	if err != nil {
		return nil, err
	}

	// Get compressed size
	if fileInfo, statErr := os.Stat(output); statErr == nil {
		info.CompressedSize = fileInfo.Size()
		info.CompressionRatio = calculateCompressionRatio(info.TotalSize, info.CompressedSize)
	}

	// Generate archive checksum. fingerprint only speaks XXH3-128 (it has
	// no need for a cryptographic digest — see fingerprint/digest.go) so
	// any other requested algorithm falls back to it with the label
	// corrected to reflect what was actually computed.
	if digest, hashErr := fingerprint.OfFile(output); hashErr == nil {
		info.Checksums["xxh3-128"] = digest.Hex()
		info.HasChecksums = true
		info.ChecksumAlgorithm = "xxh3-128"
	}

	// Set created timestamp
	now := time.Now()
	info.Created = &now

	return info, nil
}

// discoverSourceFiles walks each source and matches it against the
// include/exclude glob patterns.
//
// Grounded on pathfinder/finder.go's FindFiles walk shape, inlined
// directly against doublestar rather than going through pathfinder's
// Finder: pathfinder's additional machinery (archive-aware scanning,
// result ranking) has no use here, where the only caller is Create
// building a flat file list for one archive.
func discoverSourceFiles(sources []string, opts *CreateOptions) ([]string, error) {
	var allFiles []string
	seen := make(map[string]bool) // Deduplicate files

	for _, source := range sources {
		// Check if source exists
		sourceInfo, err := os.Stat(source)
		if err != nil {
			return nil, newErrorf(ErrCodeCorruptArchive, OperationCreate, source, err,
				"source not found: %v", err)
		}

		if sourceInfo.IsDir() {
			includePatterns := opts.IncludePatterns
			if len(includePatterns) == 0 {
				includePatterns = []string{"**/*"}
			}

			walkErr := filepath.WalkDir(source, func(p string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					return nil
				}
				if !opts.FollowSymlinks && d.Type()&os.ModeSymlink != 0 {
					return nil
				}
				rel, relErr := filepath.Rel(source, p)
				if relErr != nil {
					return relErr
				}
				rel = filepath.ToSlash(rel)
				if !shouldIncludeFile(rel, includePatterns, opts.ExcludePatterns) {
					return nil
				}
				if !seen[p] {
					allFiles = append(allFiles, p)
					seen[p] = true
				}
				return nil
			})
			if walkErr != nil {
				return nil, newErrorf(ErrCodeCorruptArchive, OperationCreate, source, walkErr,
					"failed to discover files: %v", walkErr)
			}
		} else {
			// Single file - check against patterns
			normalizedPath := filepath.ToSlash(source)
			if shouldIncludeFile(normalizedPath, opts.IncludePatterns, opts.ExcludePatterns) {
				if !seen[source] {
					allFiles = append(allFiles, source)
					seen[source] = true
				}
			}
		}
	}

	return allFiles, nil
}

// shouldIncludeFile checks if a file should be included based on patterns.
func shouldIncludeFile(normalizedPath string, includePatterns, excludePatterns []string) bool {
	// Check exclude patterns first
	for _, pattern := range excludePatterns {
		if matched, _ := doublestar.Match(pattern, normalizedPath); matched {
			return false
		}
	}

	// If no include patterns, include by default
	if len(includePatterns) == 0 {
		return true
	}

	// Must match at least one include pattern
	for _, pattern := range includePatterns {
		if matched, _ := doublestar.Match(pattern, normalizedPath); matched {
			return true
		}
	}

	return false
}

// createTar creates an uncompressed tar archive.
func createTar(output string, files []string, opts *CreateOptions, info *ArchiveInfo) error {
	outFile, err := os.Create(output)
	if err != nil {
		return newErrorf(ErrCodeFileExists, OperationCreate, output, err,
			"failed to create tar archive: %v", err)
	}
	defer func() { _ = outFile.Close() }()

	tw := tar.NewWriter(outFile)
	defer func() { _ = tw.Close() }()

	return writeTarEntries(tw, files, opts, info, output)
}

// createTarGz creates a tar.gz archive.
func createTarGz(output string, files []string, opts *CreateOptions, info *ArchiveInfo) error {
	outFile, err := os.Create(output)
	if err != nil {
		return newErrorf(ErrCodeFileExists, OperationCreate, output, err,
			"failed to create tar.gz archive: %v", err)
	}
	defer func() { _ = outFile.Close() }()

	// Create gzip writer with compression level
	gw, err := gzip.NewWriterLevel(outFile, opts.CompressionLevel)
	if err != nil {
		return newErrorf(ErrCodeUnsupportedCompression, OperationCreate, output, err,
			"failed to create gzip writer: %v", err)
	}
	defer func() { _ = gw.Close() }()

	tw := tar.NewWriter(gw)
	defer func() { _ = tw.Close() }()

	return writeTarEntries(tw, files, opts, info, output)
}

// writeTarEntries writes files to a tar writer.
func writeTarEntries(tw *tar.Writer, files []string, opts *CreateOptions, info *ArchiveInfo, archivePath string) error {
	for _, filePath := range files {
		fileInfo, err := os.Lstat(filePath)
		if err != nil {
			return newErrorf(ErrCodeCorruptArchive, OperationCreate, archivePath, err,
				"failed to stat file %s: %v", filePath, err)
		}

		// Entry names are stored relative (no leading slash) so that
		// Extract and Verify, which reject absolute entry paths, accept them.
		name := strings.TrimPrefix(filepath.ToSlash(filePath), "/")

		// Handle symlinks
		if fileInfo.Mode()&os.ModeSymlink != 0 {
			if !opts.FollowSymlinks {
				// Add symlink as-is
				linkTarget, err := os.Readlink(filePath)
				if err != nil {
					return newErrorf(ErrCodeCorruptArchive, OperationCreate, archivePath, err,
						"failed to read symlink %s: %v", filePath, err)
				}

				header := &tar.Header{
					Name:     name,
					Linkname: linkTarget,
					Typeflag: tar.TypeSymlink,
					Mode:     int64(fileInfo.Mode()),
					ModTime:  fileInfo.ModTime(),
				}

				if !*opts.PreservePermissions {
					header.Mode = 0777
				}

				if err := tw.WriteHeader(header); err != nil {
					return newErrorf(ErrCodeCorruptArchive, OperationCreate, archivePath, err,
						"failed to write symlink header: %v", err)
				}

				info.EntryCount++
				continue
			}

			// Follow symlink - get target file info
			targetInfo, err := os.Stat(filePath)
			if err != nil {
				return newErrorf(ErrCodeCorruptArchive, OperationCreate, archivePath, err,
					"failed to stat symlink target %s: %v", filePath, err)
			}
			fileInfo = targetInfo
		}

		// Handle directories
		if fileInfo.IsDir() {
			header := &tar.Header{
				Name:     name + "/",
				Typeflag: tar.TypeDir,
				Mode:     int64(fileInfo.Mode()),
				ModTime:  fileInfo.ModTime(),
			}

			if !*opts.PreservePermissions {
				header.Mode = 0755
			}

			if err := tw.WriteHeader(header); err != nil {
				return newErrorf(ErrCodeCorruptArchive, OperationCreate, archivePath, err,
					"failed to write directory header: %v", err)
			}

			info.EntryCount++
			continue
		}

		// Handle regular files
		file, err := os.Open(filePath)
		if err != nil {
			return newErrorf(ErrCodeCorruptArchive, OperationCreate, archivePath, err,
				"failed to open file %s: %v", filePath, err)
		}

		header := &tar.Header{
			Name:    filePath,
			Size:    fileInfo.Size(),
			Mode:    int64(fileInfo.Mode()),
			ModTime: fileInfo.ModTime(),
		}

		if !*opts.PreservePermissions {
			header.Mode = 0644
		}

		if err := tw.WriteHeader(header); err != nil {
			_ = file.Close()
			return newErrorf(ErrCodeCorruptArchive, OperationCreate, archivePath, err,
				"failed to write file header: %v", err)
		}

		bytesWritten, err := io.Copy(tw, file)
		_ = file.Close()

		if err != nil {
			return newErrorf(ErrCodeCorruptArchive, OperationCreate, archivePath, err,
				"failed to write file data: %v", err)
		}

		info.EntryCount++
		info.TotalSize += bytesWritten
	}

	return nil
}

// createZip creates a zip archive.
func createZip(output string, files []string, opts *CreateOptions, info *ArchiveInfo) error {
	outFile, err := os.Create(output)
	if err != nil {
		return newErrorf(ErrCodeFileExists, OperationCreate, output, err,
			"failed to create zip archive: %v", err)
	}
	defer func() { _ = outFile.Close() }()

	zw := zip.NewWriter(outFile)
	defer func() { _ = zw.Close() }()

	// Set compression level
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, opts.CompressionLevel)
	})

	for _, filePath := range files {
		fileInfo, err := os.Lstat(filePath)
		if err != nil {
			return newErrorf(ErrCodeCorruptArchive, OperationCreate, output, err,
				"failed to stat file %s: %v", filePath, err)
		}

		// Handle symlinks
		if fileInfo.Mode()&os.ModeSymlink != 0 {
			if opts.FollowSymlinks {
				targetInfo, err := os.Stat(filePath)
				if err != nil {
					return newErrorf(ErrCodeCorruptArchive, OperationCreate, output, err,
						"failed to stat symlink target %s: %v", filePath, err)
				}
				fileInfo = targetInfo
			} else {
				// ZIP doesn't have native symlink support - skip
				continue
			}
		}

		// Handle directories
		if fileInfo.IsDir() {
			header, err := zip.FileInfoHeader(fileInfo)
			if err != nil {
				return newErrorf(ErrCodeCorruptArchive, OperationCreate, output, err,
					"failed to create zip header: %v", err)
			}
			header.Name = filePath + "/"
			header.Method = zip.Deflate

			if _, err := zw.CreateHeader(header); err != nil {
				return newErrorf(ErrCodeCorruptArchive, OperationCreate, output, err,
					"failed to write directory header: %v", err)
			}

			info.EntryCount++
			continue
		}

		// Handle regular files
		file, err := os.Open(filePath)
		if err != nil {
			return newErrorf(ErrCodeCorruptArchive, OperationCreate, output, err,
				"failed to open file %s: %v", filePath, err)
		}

		header, err := zip.FileInfoHeader(fileInfo)
		if err != nil {
			_ = file.Close()
			return newErrorf(ErrCodeCorruptArchive, OperationCreate, output, err,
				"failed to create zip header: %v", err)
		}
		header.Name = filePath
		header.Method = zip.Deflate

		if !*opts.PreservePermissions {
			header.SetMode(0644)
		}

		writer, err := zw.CreateHeader(header)
		if err != nil {
			_ = file.Close()
			return newErrorf(ErrCodeCorruptArchive, OperationCreate, output, err,
				"failed to create zip entry: %v", err)
		}

		bytesWritten, err := io.Copy(writer, file)
		_ = file.Close()

		if err != nil {
			return newErrorf(ErrCodeCorruptArchive, OperationCreate, output, err,
				"failed to write file data: %v", err)
		}

		info.EntryCount++
		info.TotalSize += bytesWritten
	}

	return nil
}

// createGzip creates a gzip file (single file only).
func createGzip(output string, files []string, opts *CreateOptions, info *ArchiveInfo) error {
	// GZIP format only supports single file
	if len(files) == 0 {
		return newError(ErrCodeInvalidFormat, "no files to compress", OperationCreate, output, nil)
	}
	if len(files) > 1 {
		return newError(ErrCodeInvalidFormat, "gzip format only supports single file compression", OperationCreate, output, nil)
	}

	inputPath := files[0]

	// Verify it's a file (not directory)
	fileInfo, err := os.Stat(inputPath)
	if err != nil {
		return newErrorf(ErrCodeCorruptArchive, OperationCreate, output, err,
			"failed to stat input file: %v", err)
	}
	if fileInfo.IsDir() {
		return newError(ErrCodeInvalidFormat, "cannot compress directory with gzip format (use tar.gz)", OperationCreate, output, nil)
	}

	// Open input file
	inFile, err := os.Open(inputPath)
	if err != nil {
		return newErrorf(ErrCodeCorruptArchive, OperationCreate, output, err,
			"failed to open input file: %v", err)
	}
	defer func() { _ = inFile.Close() }()

	// Create output file
	outFile, err := os.Create(output)
	if err != nil {
		return newErrorf(ErrCodeFileExists, OperationCreate, output, err,
			"failed to create gzip file: %v", err)
	}
	defer func() { _ = outFile.Close() }()

	// Create gzip writer with compression level
	gw, err := gzip.NewWriterLevel(outFile, opts.CompressionLevel)
	if err != nil {
		return newErrorf(ErrCodeUnsupportedCompression, OperationCreate, output, err,
			"failed to create gzip writer: %v", err)
	}
	defer func() { _ = gw.Close() }()

	// Set gzip header name to original filename
	gw.Name = filepath.Base(inputPath)

	// Compress file
	bytesWritten, err := io.Copy(gw, inFile)
	if err != nil {
		return newErrorf(ErrCodeCorruptArchive, OperationCreate, output, err,
			"failed to compress file: %v", err)
	}

	info.EntryCount = 1
	info.TotalSize = bytesWritten

	return nil
}
