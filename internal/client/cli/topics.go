package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) Topics(ctx context.Context) error {
	items, isLocal, err := a.topics.List(ctx)
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
		fmt.Printf("%s  %s (%d presentations)%s\n", item.ID, item.Title, item.PresentationCount, marker)
	}
	return nil
}

func (a *App) AddTopic(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Enter topic title", os.Stdout)
	if err != nil {
		return err
	}

	topic, isLocal, err := a.topics.Create(ctx, title, false, "")
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if isLocal {
		fmt.Printf("Saved locally as %s, will need a manual re-add once online\n", topic.ID)
	} else {
		fmt.Printf("Created topic %s\n", topic.ID)
	}
	return nil
}

func (a *App) RenameTopic(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter topic id", os.Stdout)
	if err != nil {
		return err
	}
	title, err := GetSimpleText(a.reader, "Enter new title", os.Stdout)
	if err != nil {
		return err
	}

	topic, isLocal, err := a.topics.Rename(ctx, id, title)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if isLocal {
		fmt.Printf("Renamed locally: %s\n", topic.Title)
	} else {
		fmt.Printf("Renamed: %s\n", topic.Title)
	}
	return nil
}

func (a *App) DeleteTopic(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter topic id", os.Stdout)
	if err != nil {
		return err
	}

	isLocal, err := a.topics.Delete(ctx, id)
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
