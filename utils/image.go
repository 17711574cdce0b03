package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
)

// SaveUploadedImage stores the uploaded file under static/uploads/<dir> and
// writes a 320px-wide thumbnail next to it. Returns the public paths of the
// original and the thumbnail.
func SaveUploadedImage(r *http.Request, fieldName, dir string) (string, string, error) {
	file, header, err := r.FormFile(fieldName)
	if err != nil {
		return "", "", err
	}
	defer file.Close()

	filename := fmt.Sprintf("%d_%s", time.Now().UnixNano(), header.Filename)
	fullDir := "./static/uploads/" + dir
	if err := os.MkdirAll(fullDir, os.ModePerm); err != nil {
		return "", "", err
	}

	path := filepath.Join(fullDir, filename)
	if err := saveFile(file, path); err != nil {
		return "", "", err
	}

	thumbName := "thumb_" + filename
	thumbPath := filepath.Join(fullDir, thumbName)
	if err := writeThumbnail(path, thumbPath); err != nil {
		// Thumbnail failure is not fatal; the original is already stored.
		return "/uploads/" + dir + "/" + filename, "", nil
	}

	return "/uploads/" + dir + "/" + filename, "/uploads/" + dir + "/" + thumbName, nil
}

func saveFile(file multipart.File, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, file)
	return err
}

func writeThumbnail(srcPath, dstPath string) error {
	img, err := imaging.Open(srcPath)
	if err != nil {
		return err
	}
	thumb := imaging.Resize(img, 320, 0, imaging.Lanczos)
	return imaging.Save(thumb, dstPath)
}
