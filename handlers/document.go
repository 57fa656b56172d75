package handlers

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/datatypes"
	"opsboard/config"
	"opsboard/middleware"
	"opsboard/models"
)

var documentSortAllowed = map[string]bool{
	"title": true, "file_name": true, "size": true, "created_at": true,
}

func GetAllDocuments(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	query := config.DB.Model(&models.Document{})
	query = params.ApplySearch(query, []string{"title", "file_name"})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		writeDBError(w, err)
		return
	}

	var documents []models.Document
	query = params.ApplySort(query, documentSortAllowed, "created_at")
	query = params.ApplyPagination(query)
	if err := query.Find(&documents).Error; err != nil {
		writeDBError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data": documents,
		"meta": params.Meta(total),
	})
}

func GetDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var document models.Document
	if err := config.DB.First(&document, "id = ?", id).Error; err != nil {
		writeDBError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(document)
}

// UploadDocument stores the file with the storage provider and the
// metadata row in one request. An identical file (same sha256) is not
// stored twice; the existing document is returned instead.
func UploadDocument(w http.ResponseWriter, r *http.Request) {
	// Parse the multipart form (max 50MB)
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	title := r.FormValue("title")
	if title == "" {
		title = header.Filename
	}
	tags := datatypes.JSON([]byte("[]"))
	if s := r.FormValue("tags"); s != "" {
		if !json.Valid([]byte(s)) {
			http.Error(w, "tags must be a JSON array", http.StatusBadRequest)
			return
		}
		tags = datatypes.JSON([]byte(s))
	}

	// Hash for deduplication, then rewind for the upload.
	hasher := sha256.New()
	size, err := io.Copy(hasher, file)
	if err != nil {
		http.Error(w, "failed to hash file: "+err.Error(), http.StatusInternalServerError)
		return
	}
	fileHash := hex.EncodeToString(hasher.Sum(nil))
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		http.Error(w, "failed to rewind file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var existing models.Document
	if err := config.DB.Where("file_hash = ?", fileHash).First(&existing).Error; err == nil {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message":  "file already exists",
			"document": existing,
		})
		return
	}

	// Timestamped name avoids collisions between same-named uploads.
	timestamp := time.Now().Format("20060102-150405")
	ext := filepath.Ext(header.Filename)
	filename := fmt.Sprintf("%s-%s%s", timestamp, uuid.New().String()[:8], ext)

	fileURL, err := fileStore.Upload(r.Context(), file, filename, "documents")
	if err != nil {
		http.Error(w, "upload failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	document := models.Document{
		Title:       title,
		FileName:    header.Filename,
		URL:         fileURL,
		ContentType: header.Header.Get("Content-Type"),
		Size:        size,
		FileHash:    fileHash,
		Tags:        tags,
		UploadedBy:  middleware.GetUserName(r),
	}
	if err := config.DB.Create(&document).Error; err != nil {
		// Orphaned object; remove it so storage stays consistent.
		fileStore.Delete(r.Context(), fileURL)
		writeDBError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(document)
}

// UpdateDocument updates metadata only; the stored file is immutable.
func UpdateDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var document models.Document
	if err := config.DB.First(&document, "id = ?", id).Error; err != nil {
		writeDBError(w, err)
		return
	}

	var in struct {
		Title *string         `json:"title"`
		Tags  json.RawMessage `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if in.Title != nil {
		document.Title = *in.Title
	}
	if in.Tags != nil {
		document.Tags = datatypes.JSON(in.Tags)
	}

	if err := config.DB.Save(&document).Error; err != nil {
		writeDBError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(document)
}

// DeleteDocument removes the metadata row and the stored object.
func DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var document models.Document
	if err := config.DB.First(&document, "id = ?", id).Error; err != nil {
		writeDBError(w, err)
		return
	}

	if err := config.DB.Delete(&document).Error; err != nil {
		writeDBError(w, err)
		return
	}
	if err := fileStore.Delete(r.Context(), document.URL); err != nil {
		// Row is gone; log and carry on rather than resurrecting it.
		log.Printf("failed to delete stored object %s: %v", document.URL, err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadFile is the bare attachment endpoint: store the file, return
// its URL. Used by forms that attach files to other records.
func UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		http.Error(w, "failed to read file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("%s-%s", timestamp, sanitizeFilename(header.Filename))

	fileURL, err := fileStore.Upload(r.Context(), &buf, filename, "attachments")
	if err != nil {
		http.Error(w, "upload failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"url":      fileURL,
		"filename": filename,
	})
}
