package cli

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"blogue/app/config"
	"blogue/app/models"
	"blogue/app/repositories"
)

// migrate imports posts from a legacy flat file into the configured backend.
// Posts already present (same title and content) are skipped, so the import
// can be re-run safely.
func migrate(path string) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		fmt.Printf("File %s not found. Nothing to migrate.\n", path)
		return
	}
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}

	var legacy []*models.Post
	if err := json.Unmarshal(data, &legacy); err != nil {
		log.Fatalf("Failed to parse %s: %v", path, err)
	}
	if len(legacy) == 0 {
		fmt.Println("No posts found in the file.")
		return
	}

	posts, _, closer, err := openRepositories(config.Load())
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer closer()

	fmt.Printf("Found %d posts to migrate...\n", len(legacy))

	migrated, err := MigratePosts(posts, legacy)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	fmt.Printf("Migration finished: %d imported, %d skipped.\n", migrated, len(legacy)-migrated)
	fmt.Println("Consider backing up and removing the legacy file.")
}

// MigratePosts imports legacy posts into repo, skipping posts that already
// exist with the same title and content. It returns the number imported.
// The legacy record's id and updated timestamp are discarded; its creation
// time is preserved when present.
func MigratePosts(repo repositories.PostRepository, legacy []*models.Post) (int, error) {
	existing, err := repo.List()
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool, len(existing))
	for _, post := range existing {
		seen[post.Title+"\x00"+post.Content] = true
	}

	migrated := 0
	for _, old := range legacy {
		if seen[old.Title+"\x00"+old.Content] {
			fmt.Printf("Post %q already exists. Skipping...\n", old.Title)
			continue
		}

		post := &models.Post{
			Title:     old.Title,
			Content:   old.Content,
			FileURL:   old.FileURL,
			Comments:  old.Comments,
			CreatedAt: old.CreatedAt,
		}
		if err := repo.Create(post); err != nil {
			return migrated, fmt.Errorf("failed to migrate post %q: %v", old.Title, err)
		}
		seen[post.Title+"\x00"+post.Content] = true
		migrated++
		fmt.Printf("Post %q migrated.\n", old.Title)
	}
	return migrated, nil
}
