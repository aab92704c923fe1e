package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

func (a *App) Presentations(ctx context.Context) error {
	topicID, err := GetSimpleText(a.reader, "Enter topic id", os.Stdout)
	if err != nil {
		return err
	}

	items, isLocal, err := a.presentations.List(ctx, topicID)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if isLocal {
		fmt.Println("(showing local copy)")
	}
	for _, item := range items {
		marker := ""
		if item.IsLocal {
			marker = " *"
		}
		video := "no video"
		if item.VideoURL != "" {
			video = fmt.Sprintf("video %ds", item.Duration)
		}
		fmt.Printf("%s  %s (%s)%s\n", item.ID, item.Title, video, marker)
	}
	return nil
}

func (a *App) AddPresentation(ctx context.Context) error {
	topicID, err := GetSimpleText(a.reader, "Enter topic id", os.Stdout)
	if err != nil {
		return err
	}
	title, err := GetSimpleText(a.reader, "Enter presentation title", os.Stdout)
	if err != nil {
		return err
	}
	script, err := GetMultiline(a.reader, "Enter script", os.Stdout)
	if err != nil {
		return err
	}
	goalText, err := GetSimpleText(a.reader, "Enter goal time in seconds (empty for none)", os.Stdout)
	if err != nil {
		return err
	}
	goalTime := 0
	if goalText != "" {
		goalTime, err = strconv.Atoi(goalText)
		if err != nil {
			fmt.Println("Goal time must be a number")
			return err
		}
	}

	p, isLocal, err := a.presentations.Create(ctx, topicID, title, script, goalTime)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if isLocal {
		fmt.Printf("Saved locally as %s\n", p.ID)
	} else {
		fmt.Printf("Created presentation %s\n", p.ID)
	}
	return nil
}

func (a *App) DeletePresentation(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter presentation id", os.Stdout)
	if err != nil {
		return err
	}

	isLocal, err := a.presentations.Delete(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if isLocal {
		fmt.Println("Deleted from local copy")
	} else {
		fmt.Println("Deleted")
	}
	return nil
}

// Upload attaches a recorded practice video to a presentation.
func (a *App) Upload(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter presentation id", os.Stdout)
	if err != nil {
		return err
	}
	path, err := GetSimpleText(a.reader, "Enter video file path", os.Stdout)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		log.Printf("Cannot open %s: %v", path, err)
		return err
	}
	defer f.Close()

	p, err := a.presentations.AttachVideo(ctx, id, filepath.Base(path), f)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Uploaded, presentation %s now has a %ds video\n", p.ID, p.Duration)
	return nil
}
