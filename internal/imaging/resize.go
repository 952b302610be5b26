package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/disintegration/imaging"
)

// Параметры подготовки загруженного фото перед отправкой провайдеру.
const (
	maxDimension = 512
	jpegQuality  = 85
)

// FitJPEG уменьшает изображение так, чтобы оно вписывалось в 512x512
// с сохранением пропорций, и перекодирует его в JPEG. Фото меньше
// лимита не увеличивается.
func FitJPEG(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode uploaded image: %w", err)
	}

	fitted := imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}
	return buf.Bytes(), nil
}

// ToDataURI кодирует JPEG-байты в data URI для хранения и для vision-вызовов.
func ToDataURI(jpegData []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpegData)
}
