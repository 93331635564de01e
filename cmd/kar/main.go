// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command kar packs scene content into kar archives and unpacks them.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/devblok/glscenes/content"
	"github.com/devblok/glscenes/utility/kar"
)

func init() {
	currentUserName = "unknown"
	if u, err := user.Current(); err == nil {
		currentUserName = u.Name
	}
}

var (
	currentUserName string
	author          = flag.String("author", "", "Set the author of the package when compressing, current user by default")
	version         = flag.Int64("version", 1, "Archive version number to create it with")
	extract         = flag.String("e", "", "Extract the archive given")
	compress        = flag.String("c", "", "Compress the given folder")
	list            = flag.String("l", "", "List the contents of the archive given")
	dstFile         = flag.String("f", "out.kar", "Destination file when compressing")
	dstDir          = flag.String("d", ".", "Destination folder when extracting")
	shadersOnly     = flag.Bool("shaders", false, "Compress shader sources only")
	silent          = flag.Bool("s", false, "Silent")
)

func main() {
	flag.Parse()
	if *silent {
		log.SetLevel(log.WarnLevel)
	}

	ops := 0
	for _, op := range []string{*extract, *compress, *list} {
		if op != "" {
			ops++
		}
	}
	switch {
	case ops == 0:
		flag.PrintDefaults()
		return
	case ops > 1:
		log.Fatal("only one operation at a time")
	}

	var err error
	switch {
	case *compress != "":
		err = compressFiles(*compress, *dstFile)
	case *extract != "":
		err = extractFiles(*extract, *dstDir)
	case *list != "":
		err = listFiles(*list)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// filesToCompress returns every file below root, or every shader source
// with shadersOnly set.
func filesToCompress(root string) ([]string, error) {
	if *shadersOnly {
		files, _, err := content.ShaderFiles(root)
		return files, err
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func compressFiles(root, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		return errors.New("destination file exists, will not overwrite")
	}

	files, err := filesToCompress(root)
	if err != nil {
		return err
	}

	name := *author
	if name == "" {
		name = currentUserName
	}
	builder, err := kar.NewBuilder(kar.Header{
		Author:      name,
		DateCreated: time.Now().Unix(),
		Version:     *version,
	})
	if err != nil {
		return err
	}
	defer builder.Close()

	for _, path := range files {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if err := addFile(builder, filepath.ToSlash(rel), path); err != nil {
			return err
		}
		log.WithField("file", rel).Debug("added")
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	n, err := builder.WriteTo(out)
	if err != nil {
		out.Close()
		return err
	}
	log.WithFields(log.Fields{
		"archive": dst,
		"files":   len(files),
		"bytes":   n,
	}).Info("archive written")
	return out.Close()
}

func addFile(builder *kar.Builder, name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return builder.Add(name, f)
}

func extractFiles(archive, dst string) error {
	ar, err := kar.OpenFile(archive)
	if err != nil {
		return err
	}
	defer ar.Close()

	for _, name := range ar.Files() {
		if !filepath.IsLocal(filepath.FromSlash(name)) {
			return fmt.Errorf("refusing to extract %q outside of %s", name, dst)
		}
		data, err := ar.ReadAll(name)
		if err != nil {
			return err
		}
		path := filepath.Join(dst, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		log.WithField("file", name).Debug("extracted")
	}
	log.WithFields(log.Fields{
		"archive": archive,
		"files":   len(ar.Files()),
	}).Info("archive extracted")
	return nil
}

func listFiles(archive string) error {
	ar, err := kar.OpenFile(archive)
	if err != nil {
		return err
	}
	defer ar.Close()

	h := ar.Header()
	fmt.Printf("author: %s, version: %d, created: %s\n",
		h.Author, h.Version, time.Unix(h.DateCreated, 0).Format(time.RFC3339))
	for _, name := range ar.Files() {
		entry, _ := ar.Stat(name)
		fmt.Printf("%10d %10d %s\n", entry.Size, entry.CompressedSize, name)
	}
	return nil
}
